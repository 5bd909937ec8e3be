package jack

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleReporterInit(t *testing.T) {
	assert := assert.New(t)

	r := NewSimpleReporter(io.Discard)

	assert.False(r.HadError())
}

func TestSimpleReporterSendAnyError(t *testing.T) {
	assert := assert.New(t)
	err := errors.New("Test error")

	var out strings.Builder
	r := NewSimpleReporter(&out)
	r.Report(err)

	assert.Equal(fmt.Sprintf("%v\n", err), out.String())
	assert.True(r.HadError())
}

func TestSimpleReporterSendErrors(t *testing.T) {
	assert := assert.New(t)
	err1 := NewLexError(1, 3, "Unterminated string.")
	err2 := NewSyntaxError(NewToken(SYMBOL, ";", 2, 7), "expression")

	var out strings.Builder
	r := NewSimpleReporter(&out)
	r.Report(err1)
	r.Report(err2)

	assert.Equal(fmt.Sprintf("%v\n%v\n", err1, err2), out.String())
	assert.True(r.HadError())
}

func TestSimpleReporterConcurrentReports(t *testing.T) {
	assert := assert.New(t)

	var out strings.Builder
	r := NewSimpleReporter(&out)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Report(fmt.Errorf("error %d", i))
		}(i)
	}
	wg.Wait()

	assert.True(r.HadError())
	assert.Len(strings.Split(strings.TrimSpace(out.String()), "\n"), 8)
}
