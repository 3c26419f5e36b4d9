package scheduler

import (
	"strings"
	"testing"

	"github.com/omarshaarawi/gmsim/internal/api/strength"
	"github.com/omarshaarawi/gmsim/internal/config"
	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/montecarlo"
	"github.com/omarshaarawi/gmsim/internal/repository/memory"
	"github.com/omarshaarawi/gmsim/internal/service"
)

func newGM(t *testing.T) *service.GMService {
	t.Helper()
	reg, err := league.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry: %v", err)
	}
	return service.NewGMService(reg, strength.Static{}, memory.NewRepository(), montecarlo.NewProjector(montecarlo.DefaultConfig()), 1000)
}

func TestRunAuditSendsReport(t *testing.T) {
	var sent []string
	s, err := NewScheduler(newGM(t), config.Audit{Enabled: true, Hour: 6, Location: "America/Chicago"}, nil, func(text string) error {
		sent = append(sent, text)
		return nil
	})
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	s.runAudit()
	if len(sent) != 1 || !strings.Contains(sent[0], "audit passed") {
		t.Fatalf("sent = %q", sent)
	}
}

func TestStartAndStop(t *testing.T) {
	purged := 0
	s, err := NewScheduler(newGM(t), config.Audit{Enabled: true, Hour: 6, Location: "Not/AZone"}, func() int { purged++; return 0 }, nil)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	s.purgeCache()
	if purged != 1 {
		t.Fatalf("purge called %d times", purged)
	}
}
