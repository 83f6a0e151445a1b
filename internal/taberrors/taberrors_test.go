package taberrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Driver_outwardVsTechnical(t *testing.T) {
	assert := assert.New(t)

	err := Driver("could not read input file", "open input.txt: no such file or directory")

	assert.Equal("open input.txt: no such file or directory", err.Error())
	assert.Equal("could not read input file", OutwardMessage(err))
}

func Test_WrapDriver_unwrapRoundTrip(t *testing.T) {
	assert := assert.New(t)

	cause := errors.New("disk full")
	err := WrapDriver(cause, "could not save submission", "")

	assert.ErrorIs(err, cause)
	assert.Equal("could not save submission", OutwardMessage(err))
}

func Test_OutwardMessage_fallsBackToErrorForPlainErrors(t *testing.T) {
	assert := assert.New(t)

	plain := errors.New("boom")

	assert.Equal("boom", OutwardMessage(plain))
}
