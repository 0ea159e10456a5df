package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/report"
	"github.com/goodsheperd/shepherd/version"
)

func main() {
	safe := flag.Bool("n", false, "Never overwrite files; if file already exists and would be overwritten, give an error.")
	stdout := flag.Bool("s", false, "Do not write converted snapshots; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	summary := flag.Bool("summary", false, "Print a one line summary per snapshot instead of the grid.")
	jsonOut := flag.Bool("j", false, "Convert the snapshot to a .json file instead of printing it.")
	yamlOut := flag.Bool("y", false, "Convert the snapshot to a .yml file instead of printing it.")
	tmplDir := flag.String("t", "", "Use the templates in this directory instead of the standard templates.")
	outPath := flag.String("o", "", "Directory where to write converted snapshots. By default, next to the original file.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.Describe("shepherd-dump"))
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	var rep *report.Reporter
	var err error
	if *tmplDir != "" {
		rep, err = report.NewFromTemplates(*tmplDir)
	} else {
		rep, err = report.New()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating reporter: %v\n", err)
		os.Exit(1)
	}
	output := func(filename string, extension string, contents []byte) error {
		if *stdout {
			fmt.Print(string(contents))
			return nil
		}
		dir, name := filepath.Split(filename)
		if *outPath != "" {
			dir = *outPath
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("could not create output directory %v: %v", dir, err)
			}
		}
		f := filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name))+extension)
		if *safe {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file %v already exists", f)
			}
		}
		if err := os.WriteFile(f, contents, 0644); err != nil {
			return fmt.Errorf("could not write file %v: %v", f, err)
		}
		return nil
	}
	process := func(filename string) error {
		inputBytes, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("could not read file %v: %v", filename, err)
		}
		snap, err := shepherd.DecodeSnapshot(inputBytes)
		if err != nil {
			return err
		}
		if *jsonOut {
			contents, err := shepherd.EncodeSnapshot(snap, shepherd.JSON)
			if err != nil {
				return fmt.Errorf("could not encode snapshot as .json: %v", err)
			}
			if err := output(filename, ".json", contents); err != nil {
				return err
			}
		}
		if *yamlOut {
			contents, err := shepherd.EncodeSnapshot(snap, shepherd.YAML)
			if err != nil {
				return fmt.Errorf("could not encode snapshot as .yml: %v", err)
			}
			if err := output(filename, ".yml", contents); err != nil {
				return err
			}
		}
		if *jsonOut || *yamlOut {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		var text string
		if *summary {
			text, err = rep.Summary(name, snap)
		} else {
			text, err = rep.Grid(name, snap)
		}
		if err != nil {
			return fmt.Errorf("could not report %v: %v", filename, err)
		}
		fmt.Print(text)
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		files := []string{param}
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			ymlfiles, _ := filepath.Glob(filepath.Join(param, "*.yml"))
			jsonfiles, _ := filepath.Glob(filepath.Join(param, "*.json"))
			files = append(ymlfiles, jsonfiles...)
		}
		for _, file := range files {
			if err := process(file); err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
				retval = 1
			}
		}
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Shepherd command line utility for printing and converting .yml/.json snapshots.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
