package disk

type DiskUsage struct {
	Platform        string  `json:"platform"`
	Path            string  `json:"path"`
	TotalSpaceBytes uint64  `json:"totalSpaceBytes"`
	UsedSpaceBytes  uint64  `json:"usedSpaceBytes"`
	FreeSpaceBytes  uint64  `json:"freeSpaceBytes"`
	UsedPercent     float64 `json:"usedPercent"`
}
