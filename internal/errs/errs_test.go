package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageError(t *testing.T) {
	cause := fmt.Errorf("%w: 0x0", ErrInvalidDimensions)

	err := At(StageScale, 7, cause)
	assert.EqualError(t, err, "frame 7: scale: invalid dimensions: 0x0")
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	var se *StageError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, StageScale, se.Stage)
	assert.Equal(t, 7, se.Frame)

	err = At(StageWrite, -1, ErrWrite)
	assert.EqualError(t, err, "write: failed to write output")
}

func TestAt_Nil(t *testing.T) {
	assert.NoError(t, At(StageMap, 0, nil))
}
