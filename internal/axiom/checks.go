package axiom

import (
	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/adapter"
	"github.com/cortexbench/cortexbench/internal/seq"
)

func checkGenesis(env *Env) error {
	m := adapter.New(env.Factory)

	if !m.Equal(adapter.New(env.Factory)) {
		return violated("Genesis", "two fresh models must be equal")
	}
	if m.Prediction() != cortexbench.Zero {
		return violated("Genesis", "a fresh model must predict no spikes").
			withDetail("prediction", m.Prediction().String())
	}
	return nil
}

func checkBias(env *Env) error {
	m := adapter.New(env.Factory)
	m.Expose(env.Gen.Pattern())

	if m.Equal(adapter.New(env.Factory)) {
		return violated("Bias", "one input must change the model's state")
	}
	return nil
}

func checkDeterminism(env *Env) error {
	experience := env.Gen.Random(env.Timeframe)

	c := adapter.New(env.Factory).ExposeAll(experience)
	d := adapter.New(env.Factory).ExposeAll(experience)

	if !c.Equal(d) {
		return violated("Determinism", "identical experience must produce identical state")
	}
	return nil
}

func checkSensitivity(env *Env) error {
	p := env.Gen.Pattern()
	life := env.Gen.Random(env.Timeframe)

	c := adapter.New(env.Factory).Expose(p).ExposeAll(life)
	d := adapter.New(env.Factory).Expose(p.Not()).ExposeAll(life)

	if c.Equal(d) {
		return violated("Sensitivity", "an inverted first input must leave a lasting trace").
			withDetail("first_input", p.String())
	}
	return nil
}

func checkTime(env *Env) error {
	s := env.Gen.CircularRandom(2)

	c := adapter.New(env.Factory).Expose(s[0]).Expose(s[1])
	d := adapter.New(env.Factory).Expose(s[1]).Expose(s[0])

	if c.Equal(d) && s[0] != s[1] {
		return violated("Time", "swapping input order must change the resulting state")
	}
	return nil
}

func checkRefractoryPeriod(env *Env) error {
	p := env.Gen.Pattern()
	for p.IsZero() {
		p = env.Gen.Pattern()
	}

	admissible := seq.Sequence{p, env.Gen.Pattern(p)}
	consecutive := seq.Sequence{p, p}

	ok, err := adapter.New(env.Factory).Learn(admissible, env.Timeframe)
	if err != nil {
		return err
	}
	if !ok {
		return violated("RefractoryPeriod", "an admissible spike/no-spike pair must be learnable")
	}

	ok, err = adapter.New(env.Factory).Learn(consecutive, env.Timeframe)
	if err != nil {
		return err
	}
	if ok {
		return violated("RefractoryPeriod", "a spike immediately following itself must not be learnable").
			withDetail("spike", p.String())
	}
	return nil
}

func checkTemporalFlexibility(env *Env) error {
	if _, err := adapter.AdaptableRandom(env.Gen, env.Factory, env.Length, env.Timeframe); err != nil {
		return err
	}
	if _, err := adapter.AdaptableRandom(env.Gen, env.Factory, env.Length+1, env.Timeframe); err != nil {
		return err
	}
	return nil
}

func checkStagnation(env *Env) error {
	dog := adapter.New(env.Factory)

	for t := 0; t < env.Timeframe; t++ {
		trick, err := adapter.AdaptableRandom(env.Gen, env.Factory, env.Length, env.Timeframe)
		if err != nil {
			return err
		}
		learned, err := dog.Learn(trick, env.Timeframe)
		if err != nil {
			return err
		}
		if !learned {
			return nil // the dog is full: expected
		}
	}
	return violated("Stagnation", "a single model must not adapt to fresh patterns indefinitely").
		withDetail("tricks_learned", itoa(env.Timeframe))
}

func checkUnobservability(env *Env) error {
	trivialBehaviour := seq.Sequence{cortexbench.Zero, cortexbench.Zero}

	for attempt := 0; attempt < env.Timeframe; attempt++ {
		c := adapter.New(env.Factory)
		d := adapter.Warmed(env.Factory, env.Gen, env.Warmup)

		if _, err := c.TimeToLearn(trivialBehaviour, env.Timeframe); err != nil {
			return err
		}
		if _, err := d.TimeToLearn(trivialBehaviour, env.Timeframe); err != nil {
			return err
		}

		if !c.Equal(d) && adapter.IdenticalBehaviour(c, d, env.Timeframe) {
			return nil // counterexample found: different state, same behaviour
		}
	}
	return violated("Unobservability", "no behaviourally identical pair of distinct models was found").
		withDetail("attempts", itoa(env.Timeframe))
}

func checkLatency(env *Env) error {
	report := env.calibrator().Run()
	if report.OK() {
		return nil
	}

	v := violated("Latency", "per-update latency must be bounded and independent of experience").
		withDetail("workload", itoa(report.Workload)).
		withDetail("stat_reason", string(report.Stat.Reason)).
		withDetail("z", ftoa(report.Stat.Z))
	if report.CeilingExceeded {
		v = v.withDetail("ceiling", report.Ceiling.String()).
			withDetail("max_unit", report.MaxUnit.String())
	}
	return v
}
