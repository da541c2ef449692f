package warehouse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/storefront-insights/pkg/errors"
)

func TestNewTrendServiceRequiresClient(t *testing.T) {
	svc, err := NewTrendService(nil, "proj", "ds", "commerce_events")

	require.Error(t, err)
	assert.Nil(t, svc)
}

func TestNewTrendServiceRequiresTableParts(t *testing.T) {
	_, err := NewTrendService(nil, "", "ds", "commerce_events")

	require.Error(t, err)
}

func TestValidateRange(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	assert.NoError(t, validateRange(start, end))

	err := validateRange(end, start)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	assert.Error(t, validateRange(time.Time{}, end))
}
