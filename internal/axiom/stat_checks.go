package axiom

import (
	"strconv"

	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/adapter"
	"github.com/cortexbench/cortexbench/internal/seq"
	"github.com/cortexbench/cortexbench/internal/stats"
)

// checkContentSensitivity rejects the null hypothesis that adaptation time
// is independent of sequence content: learning random cyclic content must
// take consistently longer than learning the trivial sequence.
func checkContentSensitivity(env *Env) error {
	pairs := make([]stats.Pair, 0, env.Samples)
	for i := 0; i < env.Samples; i++ {
		trivialTime, err := adapter.New(env.Factory).TimeToLearn(seq.Trivial(env.Length), env.Timeframe)
		if err != nil {
			return err
		}

		target, err := adapter.AdaptableRandom(env.Gen, env.Factory, env.Length, env.Timeframe)
		if err != nil {
			return err
		}
		randomTime, err := adapter.New(env.Factory).TimeToLearn(target, env.Timeframe)
		if err != nil {
			return err
		}

		pairs = append(pairs, stats.Pair{A: float64(trivialTime), B: float64(randomTime)})
	}

	v := stats.BExceedsA(pairs, env.Stats)
	if !v.Significant {
		return violatedStat("ContentSensitivity",
			"adaptation time must depend on sequence content (random slower than trivial)", v)
	}
	return nil
}

// checkExperienceSensitivity rejects the null hypothesis that adaptation
// time is independent of the model's state: an experienced model must take
// consistently longer than a blank one on the same target.
func checkExperienceSensitivity(env *Env) error {
	pairs := make([]stats.Pair, 0, env.Samples)
	for i := 0; i < env.Samples; i++ {
		target, err := adapter.AdaptableRandom(env.Gen, env.Factory, env.Length, env.Timeframe)
		if err != nil {
			return err
		}

		blankTime, err := adapter.New(env.Factory).TimeToLearn(target, env.Timeframe)
		if err != nil {
			return err
		}
		warmedTime, err := adapter.Warmed(env.Factory, env.Gen, env.Warmup).TimeToLearn(target, env.Timeframe)
		if err != nil {
			return err
		}

		pairs = append(pairs, stats.Pair{A: float64(blankTime), B: float64(warmedTime)})
	}

	v := stats.BExceedsA(pairs, env.Stats)
	if !v.Significant {
		return violatedStat("ExperienceSensitivity",
			"adaptation time must depend on prior experience (warmed slower than blank)", v)
	}
	return nil
}

// checkDenoising compares recovery after a disruption: an adapted model's
// prediction of the expected next pattern must score consistently above a
// blank model's.
func checkDenoising(env *Env) error {
	pairs := make([]stats.Pair, 0, env.Samples)
	for i := 0; i < env.Samples; i++ {
		adaptedScore, blankScore, err := disruptionScores(env)
		if err != nil {
			return err
		}
		pairs = append(pairs, stats.Pair{A: float64(blankScore), B: float64(adaptedScore)})
	}

	v := stats.BExceedsA(pairs, env.Stats)
	if !v.Significant {
		return violatedStat("Denoising",
			"adapted models must out-predict blank ones after a disruption", v)
	}
	return nil
}

// checkGeneralisation aggregates the adapted model's post-disruption scores
// and requires them to beat chance (half the channels per prediction).
func checkGeneralisation(env *Env) error {
	total := 0
	for i := 0; i < env.Samples; i++ {
		adaptedScore, _, err := disruptionScores(env)
		if err != nil {
			return err
		}
		total += adaptedScore
	}

	chance := env.Samples * cortexbench.Width / 2
	if total <= chance {
		return violated("Generalisation", "adapted models must predict above chance").
			withDetail("score", itoa(total)).
			withDetail("chance", itoa(chance))
	}
	return nil
}

// disruptionScores runs one disruption trial: both models see a random
// disruption followed by a full replay of the facts; the score is how many
// channels of the expected next pattern each predicts correctly.
func disruptionScores(env *Env) (adapted, blank int, err error) {
	facts, err := adapter.AdaptableRandom(env.Gen, env.Factory, env.Length, env.Timeframe)
	if err != nil {
		return 0, 0, err
	}
	disruption := env.Gen.Pattern()
	expectation := facts[0]

	a := adapter.New(env.Factory)
	if _, err := a.TimeToLearn(facts, env.Timeframe); err != nil {
		return 0, 0, err
	}
	a.Expose(disruption).ExposeAll(facts)

	b := adapter.New(env.Factory)
	b.Expose(disruption).ExposeAll(facts)

	return a.Prediction().Matches(expectation), b.Prediction().Matches(expectation), nil
}

// violatedStat wraps a non-significant verdict as a violation: checks that
// required rejection of the null treat "not significant" as failure.
func violatedStat(check, expr string, v stats.Verdict) *ViolationError {
	return violated(check, expr).
		withDetail("stat_reason", string(v.Reason)).
		withDetail("z", ftoa(v.Z)).
		withDetail("nonzero_pairs", itoa(v.NNonZero))
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', 3, 64) }
