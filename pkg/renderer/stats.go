package renderer

import "time"

// RenderStats contains statistics about one rendering job
type RenderStats struct {
	TotalBlocks    int           // Number of camera blocks in the frame
	TotalPasses    int           // Passes completed
	TotalSamples   int           // Total camera samples deposited
	AverageSamples float64       // Average samples per pixel
	Elapsed        time.Duration // Wall-clock render time
}

// finalize computes the derived fields once a job completes
func (rs *RenderStats) finalize(width, height int, start time.Time) {
	rs.Elapsed = time.Since(start)
	pixels := width * height
	if pixels > 0 {
		rs.AverageSamples = float64(rs.TotalSamples) / float64(pixels)
	}
}
