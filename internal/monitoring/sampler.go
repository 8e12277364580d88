package monitoring

import (
	"log"
	"time"

	"mobileshop-backend/internal/metrics"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Sampler periodically feeds host CPU/memory/disk utilization into the
// prometheus gauges exposed on /metrics.
type Sampler struct {
	interval time.Duration
	stop     chan struct{}
}

func NewSampler(interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Sampler{interval: interval, stop: make(chan struct{})}
}

func (s *Sampler) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		s.collect()
		for {
			select {
			case <-ticker.C:
				s.collect()
			case <-s.stop:
				return
			}
		}
	}()
	log.Printf("[Monitoring] System sampler started (interval %s)", s.interval)
}

func (s *Sampler) Stop() {
	close(s.stop)
}

func (s *Sampler) collect() {
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		metrics.SystemCPUPercent.Set(percents[0])
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		metrics.SystemMemoryPercent.Set(vm.UsedPercent)
	}
	if du, err := disk.Usage("/"); err == nil {
		metrics.SystemDiskPercent.Set(du.UsedPercent)
	}
}
