package script

import (
	"fmt"
	"strings"
	"time"

	"rokuwake/internal/domain"
)

type Flavor string

const (
	FlavorBatch Flavor = "batch"
	FlavorShell Flavor = "shell"
)

// FlavorFor picks the script flavor native to goos.
func FlavorFor(goos string) Flavor {
	if goos == "windows" {
		return FlavorBatch
	}
	return FlavorShell
}

// FileName is the default trigger script name for a flavor.
func (f Flavor) FileName() string {
	if f == FlavorBatch {
		return "roku_trigger.bat"
	}
	return "roku_trigger.sh"
}

// Render produces the trigger script for seq bound to dev. Output depends only
// on its arguments.
func Render(flavor Flavor, dev domain.Device, seq domain.Sequence) []byte {
	var lines []string

	switch flavor {
	case FlavorBatch:
		lines = append(lines, "@echo off")
	default:
		lines = append(lines, "#!/bin/sh")
	}

	for _, step := range seq {
		if step.Kind == domain.StepWait {
			lines = append(lines, waitLine(flavor, step.Delay))
			continue
		}
		lines = append(lines, postLine(flavor, dev.BaseURL()+step.Path()))
	}

	newline := "\n"
	if flavor == FlavorBatch {
		newline = "\r\n"
	}
	return []byte(strings.Join(lines, newline) + newline)
}

func postLine(flavor Flavor, url string) string {
	if flavor == FlavorBatch {
		return fmt.Sprintf(`curl -d "" "%s"`, url)
	}
	return fmt.Sprintf(`curl -s -d '' '%s'`, url)
}

func waitLine(flavor Flavor, d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	if flavor == FlavorBatch {
		return fmt.Sprintf("timeout /t %d /nobreak", secs)
	}
	return fmt.Sprintf("sleep %d", secs)
}
