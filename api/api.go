package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/TFMV/salesgen/config"
	"github.com/TFMV/salesgen/metrics"
	"github.com/TFMV/salesgen/pkg/audit"
	"github.com/TFMV/salesgen/pkg/core"
	"github.com/TFMV/salesgen/pkg/sales"
	"github.com/TFMV/salesgen/pkg/writers"
	"github.com/TFMV/salesgen/report"
	"github.com/TFMV/salesgen/version"
	"github.com/gofiber/fiber/v2"
	requestlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServerOptions configures the HTTP API.
type ServerOptions struct {
	Port       string
	Prefork    bool
	MaxRecords int
	Pricing    sales.PricingMode
	Logger     *zap.Logger

	// Seed is the default seed of requests that do not name one. Zero is
	// a valid seed.
	Seed uint64

	// AccessLog receives one line per request. Nil disables it.
	AccessLog io.Writer
}

// Server holds the Fiber app instance
type Server struct {
	app  *fiber.App
	opts ServerOptions
	log  *zap.Logger
}

// NewServer initializes a new Fiber instance serving generated datasets.
func NewServer(opts ServerOptions) *Server {
	if opts.Port == "" {
		opts.Port = "3000"
	}
	if opts.MaxRecords <= 0 {
		opts.MaxRecords = config.Default().Server.MaxRecords
	}
	if opts.Pricing == "" {
		opts.Pricing = sales.PricingLegacy
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		IdleTimeout:           10 * time.Second,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		Prefork:               opts.Prefork,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	// Middleware
	app.Use(recover.New())
	if opts.AccessLog != nil {
		app.Use(requestlog.New(requestlog.Config{Output: opts.AccessLog}))
	}

	s := &Server{app: app, opts: opts, log: opts.Logger}

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": version.Name,
			"version": version.GetVersion(),
			"build":   version.GetBuildDate(),
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	app.Get("/dataset", s.handleDataset)
	app.Get("/report", s.handleReport)

	return s
}

// GetApp exposes the Fiber app for tests.
func (s *Server) GetApp() *fiber.App {
	return s.app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// datasetRequest holds the query parameters shared by the dataset routes.
type datasetRequest struct {
	records int
	seed    uint64
	pricing sales.PricingMode
}

func (s *Server) parseRequest(c *fiber.Ctx) (datasetRequest, error) {
	req := datasetRequest{
		records: sales.DefaultRecordCount,
		seed:    s.opts.Seed,
		pricing: s.opts.Pricing,
	}

	if v := c.Query("records"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return req, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid records %q", v))
		}
		req.records = n
	}
	if req.records > s.opts.MaxRecords {
		return req, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("records %d exceeds the limit of %d", req.records, s.opts.MaxRecords))
	}

	if v := c.Query("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return req, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid seed %q", v))
		}
		req.seed = seed
	}

	if v := c.Query("pricing"); v != "" {
		mode, err := sales.ParsePricingMode(v)
		if err != nil {
			return req, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		req.pricing = mode
	}

	return req, nil
}

func (s *Server) generate(c *fiber.Ctx, req datasetRequest) ([]sales.Transaction, string, error) {
	runID := uuid.NewString()
	start := time.Now()

	g := sales.NewGenerator(sales.Options{Seed: req.seed, Pricing: req.pricing})
	txs, err := g.Generate(c.UserContext(), req.records)
	if err != nil {
		return nil, runID, fmt.Errorf("failed to generate dataset: %w", err)
	}

	s.log.Info("Generated dataset",
		zap.String("run_id", runID),
		zap.Int("records", req.records),
		zap.Uint64("seed", req.seed),
		zap.String("pricing", string(req.pricing)),
		zap.Duration("elapsed", time.Since(start)),
	)
	c.Set("X-Run-ID", runID)
	return txs, runID, nil
}

// handleDataset streams a freshly generated CSV dataset.
func (s *Server) handleDataset(c *fiber.Ctx) error {
	req, err := s.parseRequest(c)
	if err != nil {
		return err
	}
	txs, _, err := s.generate(c, req)
	if err != nil {
		return err
	}

	rec := sales.NewRecord(nil, txs)
	defer rec.Release()

	var buf bytes.Buffer
	w, err := writers.NewCSVWriter(core.WriterConfig{Output: &buf})
	if err != nil {
		return err
	}
	if err := w.Write(c.UserContext(), rec); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment(config.DefaultOutputPath)
	return c.Send(buf.Bytes())
}

// handleReport returns the summary and audit of a generated dataset.
func (s *Server) handleReport(c *fiber.Ctx) error {
	req, err := s.parseRequest(c)
	if err != nil {
		return err
	}

	format := c.Query("format", "json")
	gen, err := report.NewGenerator(format)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	txs, runID, err := s.generate(c, req)
	if err != nil {
		return err
	}

	r := report.Report{
		RunID:       runID,
		Source:      config.DefaultOutputPath,
		GeneratedAt: time.Now().UTC(),
		Summary:     metrics.Summarize(txs),
		Audit:       audit.NewDatasetAuditor(req.pricing).Audit(txs),
	}
	data, err := gen.GenerateReport(r)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	case "html":
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	default:
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	}
	return c.Send(data)
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		s.log.Info("API is running", zap.String("port", s.opts.Port))
		errCh <- s.app.Listen(":" + s.opts.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("Received shutdown signal, stopping server")

	// Create a timeout context for the shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down: %w", err)
	}

	s.log.Info("Server shutdown successfully")
	return nil
}

// Shutdown stops the server, waiting for open requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

