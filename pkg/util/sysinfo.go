package util

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// SystemInfo is a point-in-time snapshot of host resource usage,
// exposed by the health endpoint.
type SystemInfo struct {
	OS            string  `json:"os"`
	Platform      string  `json:"platform"`
	KernelVersion string  `json:"kernelVersion"`
	UptimeSeconds uint64  `json:"uptimeSeconds"`
	NumCPU        int     `json:"numCpu"`
	CPUPercent    float64 `json:"cpuPercent"`
	Load1         float64 `json:"load1"`
	MemTotal      uint64  `json:"memTotal"`
	MemUsed       uint64  `json:"memUsed"`
	MemPercent    float64 `json:"memPercent"`
	NumGoroutine  int     `json:"numGoroutine"`
}

// GetSystemInfo collects host metrics. Individual probe failures leave
// the corresponding fields at their zero value.
func GetSystemInfo() *SystemInfo {
	info := &SystemInfo{
		OS:           runtime.GOOS,
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	if hi, err := host.Info(); err == nil {
		info.Platform = hi.Platform
		info.KernelVersion = hi.KernelVersion
		info.UptimeSeconds = hi.Uptime
	}
	if percents, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(percents) > 0 {
		info.CPUPercent = percents[0]
	}
	if avg, err := load.Avg(); err == nil {
		info.Load1 = avg.Load1
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemTotal = vm.Total
		info.MemUsed = vm.Used
		info.MemPercent = vm.UsedPercent
	}

	return info
}
