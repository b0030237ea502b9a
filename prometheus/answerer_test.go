package prometheus_test

import (
	"context"
	"testing"

	"github.com/fwojciec/asof"
	"github.com/fwojciec/asof/mock"
	asofprom "github.com/fwojciec/asof/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerer_Answer(t *testing.T) {
	t.Parallel()

	t.Run("counts answers by mode and status", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		inner := &mock.Answerer{
			AnswerFn: func(_ context.Context, query string, searchEnabled bool) (*asof.Answer, error) {
				if searchEnabled {
					return &asof.Answer{Query: query, Text: asof.NoResultsReply, Mode: asof.ModeSearch, Status: asof.StatusNoResults}, nil
				}
				return &asof.Answer{Query: query, Text: "hi", Mode: asof.ModeDirect, Status: asof.StatusOK}, nil
			},
		}

		a, err := asofprom.NewAnswerer(inner, reg)
		require.NoError(t, err)

		_, err = a.Answer(context.Background(), "q", false)
		require.NoError(t, err)
		_, err = a.Answer(context.Background(), "q", false)
		require.NoError(t, err)
		_, err = a.Answer(context.Background(), "q", true)
		require.NoError(t, err)

		count, err := testutil.GatherAndCount(reg, "asof_answers_total")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		count, err = testutil.GatherAndCount(reg, "asof_answer_duration_seconds")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("records values per label", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		inner := &mock.Answerer{
			AnswerFn: func(_ context.Context, _ string, _ bool) (*asof.Answer, error) {
				return &asof.Answer{Mode: asof.ModeSearch, Status: asof.StatusSearchFailed}, nil
			},
		}

		a, err := asofprom.NewAnswerer(inner, reg)
		require.NoError(t, err)

		for range 3 {
			_, err = a.Answer(context.Background(), "q", true)
			require.NoError(t, err)
		}

		families, err := reg.Gather()
		require.NoError(t, err)
		var found bool
		for _, mf := range families {
			if mf.GetName() != "asof_answers_total" {
				continue
			}
			for _, m := range mf.GetMetric() {
				labels := map[string]string{}
				for _, lp := range m.GetLabel() {
					labels[lp.GetName()] = lp.GetValue()
				}
				if labels["mode"] == "search" && labels["status"] == "search_failed" {
					found = true
					assert.InDelta(t, 3, m.GetCounter().GetValue(), 0)
				}
			}
		}
		assert.True(t, found)
	})

	t.Run("counts invalid queries", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		inner := &mock.Answerer{
			AnswerFn: func(_ context.Context, _ string, _ bool) (*asof.Answer, error) {
				return nil, asof.Errorf(asof.EINVALID, "query required")
			},
		}

		a, err := asofprom.NewAnswerer(inner, reg)
		require.NoError(t, err)

		_, err = a.Answer(context.Background(), " ", false)
		require.Error(t, err)
		assert.Equal(t, asof.EINVALID, asof.ErrorCode(err))

		families, err := reg.Gather()
		require.NoError(t, err)
		var statuses []string
		for _, mf := range families {
			if mf.GetName() != "asof_answers_total" {
				continue
			}
			for _, m := range mf.GetMetric() {
				for _, lp := range m.GetLabel() {
					if lp.GetName() == "status" {
						statuses = append(statuses, lp.GetValue())
					}
				}
			}
		}
		assert.Equal(t, []string{"invalid"}, statuses)
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		_, err := asofprom.NewAnswerer(&mock.Answerer{}, reg)
		require.NoError(t, err)

		_, err = asofprom.NewAnswerer(&mock.Answerer{}, reg)

		require.Error(t, err)
		assert.Equal(t, asof.EINTERNAL, asof.ErrorCode(err))
	})
}
