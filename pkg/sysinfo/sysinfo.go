package sysinfo

import (
	"os"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/sirupsen/logrus"

	"github.com/denysvitali/filebrowser-go/internal/models"
)

// Collector gathers process statistics and usage of the filesystem holding the served root
type Collector struct {
	root   string
	logger *logrus.Logger
}

// New creates a collector for the given root directory
func New(root string, logger *logrus.Logger) *Collector {
	return &Collector{root: root, logger: logger}
}

// Collect returns current statistics. Failures of individual probes are logged
// and reported as zero values.
func (c *Collector) Collect() models.SystemStats {
	stats := models.SystemStats{
		Disk: c.diskStats(),
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		c.logger.Warnf("Failed to get process info: %v", err)
		return stats
	}

	if cpuPercent, err := proc.CPUPercent(); err != nil {
		c.logger.Warnf("Failed to get CPU percent: %v", err)
	} else {
		stats.CPUPercent = cpuPercent
	}

	if memInfo, err := proc.MemoryInfo(); err != nil {
		c.logger.Warnf("Failed to get memory info: %v", err)
	} else {
		stats.Memory.RSS = memInfo.RSS
		stats.Memory.VMS = memInfo.VMS
	}

	if memPercent, err := proc.MemoryPercent(); err != nil {
		c.logger.Warnf("Failed to get memory percent: %v", err)
	} else {
		stats.Memory.Percent = memPercent
	}

	return stats
}

func (c *Collector) diskStats() models.DiskStats {
	usage, err := disk.Usage(c.root)
	if err != nil {
		c.logger.Warnf("Failed to get disk usage for %s: %v", c.root, err)
		return models.DiskStats{TotalHuman: humanize.Bytes(0), FreeHuman: humanize.Bytes(0)}
	}

	return models.DiskStats{
		Total:      usage.Total,
		Used:       usage.Used,
		Free:       usage.Free,
		Percent:    usage.UsedPercent,
		TotalHuman: humanize.Bytes(usage.Total),
		FreeHuman:  humanize.Bytes(usage.Free),
		Filesystem: usage.Fstype,
	}
}
