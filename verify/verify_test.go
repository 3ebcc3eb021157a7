package verify

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/maxflow/graphio"
	"github.com/wyfcoding/maxflow/metrics"
	"github.com/wyfcoding/maxflow/preflow"
)

func TestRunAgrees(t *testing.T) {
	m := metrics.NewMetrics("verify-test")
	rng := rand.New(rand.NewPCG(11, 13))
	for range 10 {
		in := graphio.Random(rng, 2+rng.IntN(60), rng.IntN(300), 25)
		report, err := Run(context.Background(), in, Options{Workers: 4, Metrics: m})
		require.NoError(t, err)
		require.Len(t, report.Outcomes, 4)
		for _, o := range report.Outcomes {
			assert.Equal(t, report.Flow, o.Flow, o.Solver)
		}
		assert.Equal(t, ReferenceSolver, report.Outcomes[3].Solver)
	}
	assert.Equal(t, float64(10), testutil.ToFloat64(m.SolvesTotal.WithLabelValues("phased")))
}

func TestRunDiamond(t *testing.T) {
	in := &graphio.Instance{Nodes: 4}
	in.Arcs = append(in.Arcs,
		graphArc(0, 1, 3), graphArc(0, 2, 2), graphArc(1, 3, 2), graphArc(2, 3, 3), graphArc(1, 2, 1))
	report, err := Run(context.Background(), in, Options{Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), report.Flow)
}

func TestRunRejectsBadInstance(t *testing.T) {
	_, err := Run(context.Background(), &graphio.Instance{Nodes: 1}, Options{})
	assert.Error(t, err)
}

func graphArc(u, v int, c int64) preflow.Arc {
	return preflow.Arc{From: u, To: v, Cap: c}
}
