package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/mrsinham/dicomscan/cmd/dicomscan/wizard"
	"github.com/mrsinham/dicomscan/internal/extract"
	"github.com/mrsinham/dicomscan/internal/scan"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Check for wizard subcommand (before flag.Parse)
	if len(os.Args) > 1 && os.Args[1] == "wizard" {
		// Extract --from flag if present
		var fromConfig string
		for i, arg := range os.Args[2:] {
			if arg == "--from" && i+3 < len(os.Args) {
				fromConfig = os.Args[i+3]
			}
		}
		if err := wizard.Run(fromConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Define command-line flags
	inputDir := flag.String("input", "", "Directory containing DICOM files (required)")
	csvPath := flag.String("csv", "", "Export the report as CSV to this path")
	recursive := flag.Bool("recursive", false, "Scan subdirectories and DICOMDIR hierarchies (IM* files)")
	workers := flag.Int("workers", 0, fmt.Sprintf("Number of parallel workers (default: %d = CPU cores)", runtime.NumCPU()))
	columns := flag.String("columns", "", "Comma-separated report columns (default: standard metadata + MeanIntensity)")
	noIntensity := flag.Bool("no-intensity", false, "Skip pixel intensity analysis")
	previews := flag.String("previews", "", "Write PNG thumbnails of each image to this directory")
	limit := flag.Int("limit", 0, "Scan at most N files (0 = no limit)")
	quiet := flag.Bool("quiet", false, "Suppress progress output and the report table")

	// Interactive wizard and config options
	interactive := flag.Bool("interactive", false, "Launch interactive wizard")
	flag.BoolVar(interactive, "i", false, "Launch interactive wizard (shortcut)")
	configFile := flag.String("config", "", "Load scan configuration from YAML file")
	saveConfig := flag.String("save-config", "", "Save scan configuration to YAML file (after the scan)")

	help := flag.Bool("help", false, "Show help message")
	showVersion := flag.Bool("version", false, "Show version")

	flag.Parse()

	// Handle interactive mode
	if *interactive {
		if err := wizard.Run(""); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Handle config file loading
	if *configFile != "" {
		state, err := wizard.LoadFromYAML(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		opts, err := wizard.ToScanOptions(state)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting config: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("dicomscan")
		fmt.Println("=========")
		fmt.Printf("Loading config from %s\n\n", *configFile)

		runScan(opts, state.Scan.CSVPath)
		os.Exit(0)
	}

	// Show version
	if *showVersion {
		fmt.Printf("dicomscan %s\n", version)
		os.Exit(0)
	}

	// Show help
	if *help {
		printHelp()
		os.Exit(0)
	}

	// Validate required arguments
	if *inputDir == "" {
		fmt.Fprintf(os.Stderr, "Error: --input is required\n")
		printUsage()
		os.Exit(1)
	}

	if *limit < 0 {
		fmt.Fprintf(os.Stderr, "Error: --limit cannot be negative\n")
		os.Exit(1)
	}

	// Parse and validate column selection
	parsedColumns, err := extract.ParseColumns(*columns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := scan.Options{
		InputDir:    *inputDir,
		Recursive:   *recursive,
		Workers:     *workers,
		Columns:     parsedColumns,
		Limit:       *limit,
		NoIntensity: *noIntensity,
		PreviewDir:  *previews,
		Quiet:       *quiet,
	}

	fmt.Println("dicomscan")
	fmt.Println("=========")
	fmt.Println()

	runScan(opts, *csvPath)

	// Save config if requested
	if *saveConfig != "" {
		state := wizard.FromScanOptions(opts, *columns, *csvPath)
		if err := wizard.SaveToYAML(state, *saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		} else {
			fmt.Printf("Configuration saved to %s\n", *saveConfig)
		}
	}
}

// runScan executes the scan and prints/exports the report. Exits with
// status 1 on scan failure.
func runScan(opts scan.Options, csvPath string) {
	rep, err := scan.Scan(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning DICOM files: %v\n", err)
		os.Exit(1)
	}

	if !opts.Quiet {
		fmt.Println()
		fmt.Println(rep.Render())
	}

	fmt.Println("\nSummary:")
	fmt.Print(rep.Summary().String())

	if csvPath != "" {
		if err := rep.SaveCSV(csvPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReport saved to %s\n", csvPath)
	}

	fmt.Printf("\n✓ Scan complete: %d of %d files parsed\n", rep.Parsed, rep.Found)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage:")
	fmt.Fprintln(os.Stderr, "  dicomscan --input <DIR> [options]")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
}

func printHelp() {
	fmt.Println("dicomscan")
	fmt.Println("=========")
	fmt.Println()
	fmt.Println("Scan a directory of DICOM files and report their metadata and pixel statistics.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  dicomscan --input <DIR> [options]")
	fmt.Println()
	fmt.Println("Required arguments:")
	fmt.Println("  --input <DIR>         Directory containing .dcm files")
	fmt.Println()
	fmt.Println("Optional arguments:")
	fmt.Println("  --csv <PATH>          Export the report as CSV")
	fmt.Println("  --recursive           Scan subdirectories; also accepts extensionless IM*")
	fmt.Println("                        image files from DICOMDIR hierarchies")
	fmt.Printf("  --workers <N>         Number of parallel workers (default: %d = CPU cores)\n", runtime.NumCPU())
	fmt.Println("  --columns <LIST>      Comma-separated report columns. Available:")
	fmt.Println("                        Filename, PatientID, PatientName, StudyInstanceUID,")
	fmt.Println("                        StudyDescription, StudyDate, Modality, Rows, Columns,")
	fmt.Println("                        MeanIntensity, MinIntensity, MaxIntensity,")
	fmt.Println("                        StdDevIntensity, FileSize")
	fmt.Println("  --no-intensity        Skip pixel intensity analysis (faster for large scans)")
	fmt.Println("  --previews <DIR>      Write a PNG thumbnail of each image's first frame")
	fmt.Println("  --limit <N>           Scan at most N files")
	fmt.Println("  --quiet               Suppress progress output and the report table")
	fmt.Println()
	fmt.Println("Interactive and config options:")
	fmt.Println("  --interactive, -i     Launch interactive wizard")
	fmt.Println("  wizard [--from FILE]  Launch wizard, optionally preloading a YAML config")
	fmt.Println("  --config <FILE>       Load scan configuration from YAML file")
	fmt.Println("  --save-config <FILE>  Save scan configuration to YAML file")
	fmt.Println()
	fmt.Println("  --help                Show this help message")
	fmt.Println("  --version             Show version")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Scan a directory and show the report table")
	fmt.Println("  dicomscan --input ./dicom_series")
	fmt.Println()
	fmt.Println("  # Scan recursively and export to CSV")
	fmt.Println("  dicomscan --input ./archive --recursive --csv report.csv")
	fmt.Println()
	fmt.Println("  # Only metadata, no pixel decoding")
	fmt.Println("  dicomscan --input ./dicom_series --no-intensity")
	fmt.Println()
	fmt.Println("  # Select columns, including extended intensity statistics")
	fmt.Println("  dicomscan --input ./dicom_series --columns \"Filename,Modality,MeanIntensity,StdDevIntensity\"")
	fmt.Println()
	fmt.Println("  # Generate thumbnails while scanning")
	fmt.Println("  dicomscan --input ./dicom_series --previews ./thumbs")
	fmt.Println()
	fmt.Println("  # Scan with 4 parallel workers (for limited resources)")
	fmt.Println("  dicomscan --input ./archive --recursive --workers 4")
	fmt.Println()
	fmt.Println("Output:")
	fmt.Println("  One row per readable DICOM file with the selected columns, followed by")
	fmt.Println("  a summary (file counts, modality histogram, intensity distribution).")
	fmt.Println("  Files that cannot be parsed are skipped with a warning, not an error.")
	fmt.Println("  MeanIntensity is empty for files without decodable pixel data.")
}
