package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"curriculo-generator/internal/domain"
	"curriculo-generator/internal/normalize"
	"curriculo-generator/internal/templates"
	"curriculo-generator/internal/usecase"
	"curriculo-generator/pkg/infrastructure"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Runs the whole pipeline against a real Chromium with a sample
// submission and writes the HTML and PDF under resume-data/generated.

var sample = map[string]interface{}{
	"body": map[string]interface{}{
		"nome":                "Maria José da Silva",
		"e-mail":              "  Maria.Silva@Example.com ",
		"telefone":            "(11) 98765-4321",
		"telefoneAlternativo": "11 3456-7890",
		"dataNascimento":      "05/03/1990",
		"cpf":                 "529.982.247-25",
		"rg":                  "12.345.678-9",
		"endereco":            "Rua das Flores, 123",
		"cidade":              "São Paulo",
		"estado":              "sp",
		"cep":                 "01001-000",
		"disponibilidade":     "Imediata",
		"escolaridade":        "Ensino Superior Completo",
		"instituicao":         "Universidade de São Paulo",
		"experiencia":         "Assistente administrativo, 2013 a 2018\nAnalista financeira, 2018 até hoje",
		"cursos":              "Excel avançado, Power BI, Inglês intermediário",
	},
}

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync() //nolint:errcheck

	renderer := infrastructure.NewChromedpRenderer(infrastructure.ChromedpConfig{
		ExecPath: os.Getenv("CHROME_PATH"),
		PoolSize: 1,
		Timeout:  30 * time.Second,
	}, logger)
	renderer.Start()
	defer renderer.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := renderer.WaitReady(ctx); err != nil {
		log.Fatalf("renderer: %v", err)
	}

	proc := usecase.NewProcessor(
		normalize.New(normalize.DefaultOptions()),
		templates.MustNew(),
		renderer,
		nil,
		logger,
		usecase.DefaultOptions(),
	)

	res, err := proc.Generate(ctx, sample, uuid.NewString())
	if err != nil {
		log.Fatalf("generate (%s): %v", domain.KindOf(err), err)
	}

	outDir := filepath.Join("resume-data", "generated")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}
	htmlPath := filepath.Join(outDir, "test_processor.html")
	pdfPath := filepath.Join(outDir, res.FileName)
	if err := os.WriteFile(htmlPath, []byte(res.HTML), 0o644); err != nil {
		log.Fatalf("write html: %v", err)
	}
	if err := os.WriteFile(pdfPath, res.PDF, 0o644); err != nil {
		log.Fatalf("write pdf: %v", err)
	}
	log.Printf("job %s: wrote %s (%d bytes) and %s", res.JobID, pdfPath, len(res.PDF), htmlPath)
}
