package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	assert.Error(t, Register(reg), "second registration is rejected")

	before := testutil.ToFloat64(Actions.WithLabelValues("contribute", OutcomeOK))
	Actions.WithLabelValues("contribute", OutcomeOK).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Actions.WithLabelValues("contribute", OutcomeOK)))
}
