package system

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// Usage is a snapshot of the playback process
type Usage struct {
	CPUPercent float64
	RSSBytes   uint64
	Threads    int32
	Goroutines int
	LogicalCPU int
}

// SampleUsage reads the current process counters. Counters the platform
// cannot provide are left at zero.
func SampleUsage() (Usage, error) {
	u := Usage{Goroutines: runtime.NumGoroutine()}

	if n, err := cpu.Counts(true); err == nil {
		u.LogicalCPU = n
	}

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return u, fmt.Errorf("process stats: %w", err)
	}
	if pct, err := p.CPUPercent(); err == nil {
		u.CPUPercent = pct
	}
	if mem, err := p.MemoryInfo(); err == nil && mem != nil {
		u.RSSBytes = mem.RSS
	}
	if th, err := p.NumThreads(); err == nil {
		u.Threads = th
	}

	return u, nil
}

// Report summarises one playback session
type Report struct {
	Build    string
	Deck     string
	Slides   int
	Frames   int
	Duration time.Duration
	Usage    Usage
}

// Write prints the report block
func (r Report) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Deck: %s (%d slides)\n"+
			"Session Time: %.2fs\n"+
			"Frames Rendered: %d\n"+
			"CPU: %.1f%% of %d logical cores\n"+
			"Memory (RSS): %.1f MiB\n"+
			"Threads / Goroutines: %d / %d\n"+
			"----------------------------\n",
		r.Build, filepath.Base(r.Deck), r.Slides, r.Duration.Seconds(), r.Frames,
		r.Usage.CPUPercent, r.Usage.LogicalCPU,
		float64(r.Usage.RSSBytes)/(1<<20),
		r.Usage.Threads, r.Usage.Goroutines,
	)
	return err
}

// AppendLog дописывает строку отчета в файл benchmark.log
func (r Report) AppendLog(path string, now time.Time) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "[%s] Build: %s | Deck: %s | Slides: %d | Frames: %d | Total: %.2fs | CPU: %.1f%% | RSS: %.1fMiB\n",
		now.Format("2006-01-02 15:04:05"),
		r.Build,
		filepath.Base(r.Deck),
		r.Slides,
		r.Frames,
		r.Duration.Seconds(),
		r.Usage.CPUPercent,
		float64(r.Usage.RSSBytes)/(1<<20),
	)
	return err
}
