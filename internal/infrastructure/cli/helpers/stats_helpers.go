package helpers

import (
	"sort"
	"strings"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
)

// CommandStatistic is how often one command appears in the audit log.
type CommandStatistic struct {
	Command string
	Count   int
}

// TopCommands ranks the commands of entries by frequency, ties broken
// alphabetically. A limit <= 0 returns every command.
func TopCommands(entries []domain.AuditEntry, limit int) []CommandStatistic {
	counts := make(map[string]int)
	for _, entry := range entries {
		if command := strings.TrimSpace(entry.Command); command != "" {
			counts[command]++
		}
	}

	ranked := make([]CommandStatistic, 0, len(counts))
	for command, n := range counts {
		ranked = append(ranked, CommandStatistic{Command: command, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Command < ranked[j].Command
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// SuccessRate is the percentage of executed commands (success + failed)
// that succeeded. Cancelled entries never ran and are excluded.
func SuccessRate(stats domain.AuditStats) float64 {
	executed := stats.Success + stats.Failed
	if executed == 0 {
		return 0
	}
	return float64(stats.Success) / float64(executed) * 100
}
