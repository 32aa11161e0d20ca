package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-jsonform/pkg/jsonschema"
	"github.com/goliatone/go-jsonform/pkg/orchestrator"
	"github.com/goliatone/go-jsonform/pkg/render"
	"github.com/goliatone/go-jsonform/pkg/renderers/tui"
	"github.com/goliatone/go-jsonform/pkg/renderers/vanilla"
)

func main() {
	data := flag.String("data", "", "JSON data file seeding the form (empty object if omitted)")
	schemaSrc := flag.String("schema", "", "schema document path or URL (optional)")
	renderer := flag.String("renderer", "vanilla", "renderer to use: vanilla or tui")
	title := flag.String("title", "", "form title")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	registry := render.NewRegistry()
	html, err := vanilla.New()
	if err != nil {
		log.Fatalf("Failed to configure vanilla renderer: %v", err)
	}
	registry.MustRegister(html)
	registry.MustRegister(tui.New())

	gen := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithLoaderOptions(jsonschema.WithHTTPFallback(10*time.Second)),
	)

	req := orchestrator.Request{
		Schema:   parseSource(*schemaSrc),
		Title:    *title,
		Renderer: *renderer,
	}
	if *data != "" {
		payload, err := os.ReadFile(*data)
		if err != nil {
			log.Fatalf("Failed to read data file: %v", err)
		}
		req.Data = payload
	}

	out, err := gen.Generate(ctx, req)
	if err != nil {
		log.Fatalf("Failed to generate form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
	} else {
		fmt.Println(string(out))
	}
}

func parseSource(raw string) jsonschema.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return jsonschema.SourceFromURL(path)
	}
	return jsonschema.SourceFromFile(path)
}
