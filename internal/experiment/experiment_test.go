package experiment

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/ffeval/internal/config"
	"github.com/san-kum/ffeval/internal/models"
)

func TestRegistry(t *testing.T) {
	g := NewWithT(t)
	r := NewRegistry()

	g.Expect(r.ListSystems()).To(Equal(models.Names()))
	g.Expect(r.ListBackends()).To(ContainElements("auto", "serial", "parallel"))

	_, err := r.GetSystem("argon")
	g.Expect(err).To(HaveOccurred())

	b, err := r.GetBackend("auto", 3, 0)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(b.Name()).To(Equal("serial"))
	_, err = r.GetBackend("gpu", 3, 0)
	g.Expect(err).To(HaveOccurred())

	ms, err := r.GetMetrics(nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ms).NotTo(BeEmpty())
	_, err = r.GetMetrics([]string{"energy_mean:torsion"})
	g.Expect(err).To(HaveOccurred())
}

func TestExperimentRun(t *testing.T) {
	g := NewWithT(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := *config.DefaultConfig()
	cfg.System = "butane"
	cfg.Backend = "parallel"
	cfg.Workers = 2
	cfg.Metrics = []string{"energy_mean", "max_force", "decomposition_residual"}

	exp := New(cfg, nil, logger)
	g.Expect(exp.Setup(nil)).To(Succeed())
	result, err := exp.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(result.NumFrames()).To(Equal(len(exp.System().Frames)))
	g.Expect(result.Backend).To(Equal("parallel"))
	g.Expect(result.Metrics).To(HaveKey("max_force"))
	g.Expect(result.Metrics["decomposition_residual"]).To(BeNumerically("<", 1e-9))
	g.Expect(buf.String()).To(ContainSubstring("staged system"))
	g.Expect(buf.String()).To(ContainSubstring("msg=frame"))
}

func TestExperimentRunBeforeSetup(t *testing.T) {
	g := NewWithT(t)
	_, err := New(*config.DefaultConfig(), nil, nil).Run(context.Background())
	g.Expect(err).To(MatchError("experiment not setup"))
}

func TestExperimentSetupWithSystem(t *testing.T) {
	g := NewWithT(t)
	sys := models.NewWater()
	sys.Frames = sys.Frames[:1]

	cfg := *config.DefaultConfig()
	cfg.ParallelFrames = true
	exp := New(cfg, nil, nil)
	g.Expect(exp.Setup(sys)).To(Succeed())

	result, err := exp.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.NumFrames()).To(Equal(1))
}
