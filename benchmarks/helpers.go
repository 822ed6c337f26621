// Package benchmarks measures trigger latency, throughput and snapshot cost.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/fsmx"
	"github.com/comalice/fsmx/internal/primitives"
)

// GenRingConfig creates n states s0..s(n-1) cycling on "tick".
func GenRingConfig(n int) primitives.MachineConfig {
	if n < 1 {
		n = 1
	}
	mb := primitives.NewMachineBuilder(fmt.Sprintf("ring_%d", n), "s0")
	for i := 0; i < n; i++ {
		mb.State(fmt.Sprintf("s%d", i)).Transition("tick", fmt.Sprintf("s%d", (i+1)%n))
	}
	return mb.Build()
}

// GenWideConfig creates one hub state with n events leading to distinct
// targets, each returning on "back". Lookup for "back" scans n candidates.
func GenWideConfig(n int) primitives.MachineConfig {
	if n < 1 {
		n = 1
	}
	mb := primitives.NewMachineBuilder(fmt.Sprintf("wide_%d", n), "hub")
	hub := mb.State("hub")
	for i := 0; i < n; i++ {
		hub.Transition(fmt.Sprintf("go%d", i), fmt.Sprintf("t%d", i))
	}
	for i := 0; i < n; i++ {
		mb.State(fmt.Sprintf("t%d", i)).Transition("back", "hub")
	}
	return mb.Build()
}

// MustBuild builds cfg without hooks.
func MustBuild(cfg primitives.MachineConfig, opts ...fsmx.Option) *fsmx.Machine[string, string] {
	m, err := primitives.Build(cfg, nil, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// GenSnapshotYAML returns the YAML snapshot of a ring of n states after one tick.
func GenSnapshotYAML(n int) []byte {
	m := MustBuild(GenRingConfig(n))
	defer m.Close()
	if res := <-resolved(m.Trigger("tick")); res != fsmx.Success {
		panic("tick failed")
	}
	data, err := yaml.Marshal(m.Snapshot())
	if err != nil {
		panic(err)
	}
	return data
}

func resolved(p *fsmx.Pending) <-chan fsmx.Result {
	ch := make(chan fsmx.Result, 1)
	go func() {
		<-p.Done()
		res, _ := p.Result()
		ch <- res
	}()
	return ch
}
