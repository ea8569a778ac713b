package models

import "time"

// ServerInfoResponse is returned by the /server_info endpoint
type ServerInfoResponse struct {
	Root      string      `json:"root"`
	StartTime time.Time   `json:"start_time"`
	Uptime    float64     `json:"uptime"`
	Stats     SystemStats `json:"system_stats"`
}

// SystemStats represents process and root filesystem statistics
type SystemStats struct {
	CPUPercent float64     `json:"cpu_percent"`
	Memory     MemoryStats `json:"memory"`
	Disk       DiskStats   `json:"disk"`
}

// MemoryStats represents memory usage statistics
type MemoryStats struct {
	RSS     uint64  `json:"rss"`     // Resident Set Size in bytes
	VMS     uint64  `json:"vms"`     // Virtual Memory Size in bytes
	Percent float32 `json:"percent"` // Memory usage percentage
}

// DiskStats represents usage of the filesystem holding the served root
type DiskStats struct {
	Total      uint64  `json:"total"`
	Used       uint64  `json:"used"`
	Free       uint64  `json:"free"`
	Percent    float64 `json:"percent"`
	TotalHuman string  `json:"total_human"`
	FreeHuman  string  `json:"free_human"`
	Filesystem string  `json:"fstype,omitempty"`
}
