// clipdump inspects debug report archives produced by "capc -d render".
//
// A report is a ZIP with a MANIFEST plus whatever the run stored: processed
// configuration, ffprobe output, caption document tree dumps, render working
// directories with part files, final log and the rendered result. clipdump
// lists and prints those without unpacking the whole archive, or extracts
// everything for a closer look.
package main

import (
	"archive/zip"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

func main() {
	all := flag.Bool("all", false, "enable all print flags (-manifest, -document, -probe, -config, -log)")
	manifest := flag.Bool("manifest", false, "print report MANIFEST")
	document := flag.Bool("document", false, "print caption document tree dumps")
	probe := flag.Bool("probe", false, "print ffprobe reports")
	cfg := flag.Bool("config", false, "print stored configuration")
	logs := flag.Bool("log", false, "print captured log files")
	extract := flag.Bool("extract", false, "extract report contents into outdir (default: report name without extension)")
	overwrite := flag.Bool("overwrite", false, "overwrite existing files on extraction")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: clipdump [-all] [-manifest] [-document] [-probe] [-config] [-log] [-extract] [-overwrite] <report.zip> [outdir]\n\n")
		fmt.Fprintf(os.Stderr, "Inspects debug report archives produced by 'capc -d render'.\n")
		fmt.Fprintf(os.Stderr, "Without flags lists archive contents.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}

	if *all {
		*manifest = true
		*document = true
		*probe = true
		*cfg = true
		*logs = true
	}

	defer func(startedAt time.Time) {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", time.Since(startedAt))
	}(time.Now())

	inPath := flag.Arg(0)
	outDir := ""
	if flag.NArg() == 2 {
		outDir = flag.Arg(1)
	}

	zr, err := zip.OpenReader(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", inPath, err)
		os.Exit(1)
	}
	defer zr.Close()

	if !*manifest && !*document && !*probe && !*cfg && !*logs && !*extract {
		listEntries(&zr.Reader)
		return
	}

	if *manifest {
		printMatching(&zr.Reader, "MANIFEST", func(name string) bool { return name == "MANIFEST" })
	}
	if *cfg {
		printMatching(&zr.Reader, "configuration", func(name string) bool { return strings.HasPrefix(name, "config/") })
	}
	if *probe {
		printMatching(&zr.Reader, "probe report", func(name string) bool {
			return strings.HasPrefix(name, "probe-") && strings.HasSuffix(name, ".xml")
		})
	}
	if *document {
		printMatching(&zr.Reader, "caption document", func(name string) bool {
			return strings.HasPrefix(name, "document-") && strings.HasSuffix(name, ".txt")
		})
	}
	if *logs {
		printMatching(&zr.Reader, "log", func(name string) bool {
			return name == "final.log" || name == "panic.log"
		})
	}

	if *extract {
		if outDir == "" {
			base := filepath.Base(inPath)
			outDir = strings.TrimSuffix(base, filepath.Ext(base))
		}
		if err := extractAll(&zr.Reader, outDir, *overwrite); err != nil {
			fmt.Fprintf(os.Stderr, "extract: %v\n", err)
			os.Exit(1)
		}
	}
}

func listEntries(zr *zip.Reader) {
	files := make([]*zip.File, len(zr.File))
	copy(files, zr.File)
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	var total uint64
	for _, f := range files {
		fmt.Printf("%12d  %s  %s\n", f.UncompressedSize64, f.Modified.Format("2006-01-02 15:04:05"), f.Name)
		total += f.UncompressedSize64
	}
	fmt.Printf("%12d  total in %d entries\n", total, len(files))
}

// printMatching writes every matching entry to stdout under a header line, so
// several reports can be compared with plain diff.
func printMatching(zr *zip.Reader, kind string, match func(string) bool) {
	found := false
	for _, f := range zr.File {
		if !match(f.Name) {
			continue
		}
		found = true
		fmt.Printf("--- %s: %s\n", kind, f.Name)
		if err := copyEntry(os.Stdout, f); err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", f.Name, err)
			os.Exit(1)
		}
		fmt.Println()
	}
	if !found {
		fmt.Fprintf(os.Stderr, "no %s entries in report\n", kind)
	}
}

func copyEntry(w io.Writer, f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	_, err = io.Copy(w, r)
	return err
}

func extractAll(zr *zip.Reader, outDir string, overwrite bool) error {
	outDir = filepath.Clean(outDir)
	if err := os.MkdirAll(outDir, 0700); err != nil {
		return err
	}

	written := 0
	for _, f := range zr.File {
		dest := filepath.Join(outDir, filepath.FromSlash(f.Name))
		// refuse entries pointing outside of the output directory
		if !strings.HasPrefix(dest, outDir+string(os.PathSeparator)) {
			return fmt.Errorf("entry escapes output directory: %s", f.Name)
		}
		if _, err := os.Stat(dest); err == nil && !overwrite {
			return fmt.Errorf("file already exists: %s (use -overwrite)", dest)
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0700); err != nil {
			return err
		}

		out, err := os.Create(dest)
		if err != nil {
			return err
		}
		if err := copyEntry(out, f); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		written++
	}
	fmt.Fprintf(os.Stderr, "extracted %d file(s) into %s\n", written, outDir)
	return nil
}
