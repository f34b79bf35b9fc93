package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"citymesh/internal/mesh"
	"citymesh/internal/tui"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Println("Warning: could not read .env file:", err)
	}

	typeFilter := flag.String("type", "", "only show objects of this type (e.g. Building)")
	export := flag.String("export", "", "write face footprints as GeoJSON to this path and exit")
	colorMode := flag.String("color", envOr("CITYMESH_COLOR", "surface"), "color mode: surface, lod or type")
	flag.Parse()

	path := flag.Arg(0)

	var (
		m        *mesh.Mesh
		warnings []string
	)
	if path != "" {
		var err error
		m, warnings, err = mesh.Load(path)
		if err != nil {
			log.Fatal(err)
		}
	}

	if *export != "" {
		if m == nil {
			log.Fatal("export requires a CityJSON file argument")
		}
		for _, w := range warnings {
			log.Println("warning:", w)
		}
		out := m
		if *typeFilter != "" {
			out = m.FilterByType(*typeFilter)
		}
		if err := out.WriteGeoJSON(*export); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %d footprints to %s\n", out.NumFaces(), *export)
		return
	}

	model := tui.New(tui.Options{
		Path:       path,
		Mesh:       m,
		Warnings:   warnings,
		TypeFilter: *typeFilter,
		ColorMode:  *colorMode,
	})
	if err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion()).Start(); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
