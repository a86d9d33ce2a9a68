package main

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	cpr "github.com/sourcefrog/cp-r"
	"github.com/sourcefrog/cp-r/internal/verify"
)

func printStats(w io.Writer, stats cpr.CopyStats) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"FILES", "DIRS", "SYMLINKS", "FILTERED", "BYTES", "BLOCKS"}),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithHeaderPaddingPerColumn([]tw.Padding{tw.PaddingNone}),
		tablewriter.WithRowPaddingPerColumn([]tw.Padding{tw.PaddingNone}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader:     tw.Off,
					ShowFooter:     tw.Off,
					BetweenRows:    tw.Off,
					BetweenColumns: tw.Off,
				},
				Lines: tw.Lines{
					ShowTop:        tw.Off,
					ShowBottom:     tw.Off,
					ShowHeaderLine: tw.Off,
					ShowFooterLine: tw.Off,
				},
			},
		}))

	row := []string{
		strconv.Itoa(stats.Files),
		strconv.Itoa(stats.Dirs),
		strconv.Itoa(stats.Symlinks),
		strconv.Itoa(stats.Filtered),
		formatSize(stats.FileBytes),
		strconv.Itoa(stats.FileBlocks),
	}
	if err := table.Append(row); err != nil {
		return err
	}
	return table.Render()
}

type statsJSON struct {
	Files      int         `json:"files"`
	Dirs       int         `json:"dirs"`
	Symlinks   int         `json:"symlinks"`
	Filtered   int         `json:"filtered"`
	FileBytes  int64       `json:"file_bytes"`
	FileBlocks int         `json:"file_blocks"`
	Verify     *verifyJSON `json:"verify,omitempty"`
}

type verifyJSON struct {
	Clean      bool     `json:"clean"`
	Missing    []string `json:"missing,omitempty"`
	Extra      []string `json:"extra,omitempty"`
	Mismatched []string `json:"mismatched,omitempty"`
}

func printJSON(w io.Writer, stats cpr.CopyStats, diff *verify.Diff) error {
	out := statsJSON{
		Files:      stats.Files,
		Dirs:       stats.Dirs,
		Symlinks:   stats.Symlinks,
		Filtered:   stats.Filtered,
		FileBytes:  stats.FileBytes,
		FileBlocks: stats.FileBlocks,
	}
	if diff != nil {
		out.Verify = &verifyJSON{
			Clean:      diff.Clean(),
			Missing:    diff.Missing,
			Extra:      diff.Extra,
			Mismatched: diff.Mismatched,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
