// Package testpdf builds small single-font PDFs for tests.
package testpdf

import (
	"bytes"
	"fmt"
	"strings"
)

// Layout is the operator used to move from one line to the next.
type Layout int

const (
	// NextLine uses T* with a 14pt leading.
	NextLine Layout = iota
	// Offset uses a relative "0 -14 Td".
	Offset
	// Matrix places every line with an absolute Tm.
	Matrix
)

const (
	lineLeading = 14
	runOffset   = 180
)

// Build returns a PDF with one page per entry in pages; each page shows its
// lines top to bottom in Helvetica. Only WinAnsi characters survive.
func Build(pages ...[]string) []byte {
	return BuildWith(NextLine, pages...)
}

// BuildWith is Build with an explicit line layout. A tab inside a line splits it
// into separate runs, each shifted right with Td and shown with no padding.
func BuildWith(layout Layout, pages ...[]string) []byte {
	if len(pages) == 0 {
		pages = [][]string{{""}}
	}

	// 1 catalog, 2 page tree, 3 font, then a page + content pair per page.
	var objects []string
	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)

	for i, lines := range pages {
		content := contentStream(layout, lines)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// BuildText is Build for a single page.
func BuildText(lines ...string) []byte {
	return Build(lines)
}

func contentStream(layout Layout, lines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BT\n/F1 11 Tf\n%d TL\n72 740 Td\n", lineLeading)
	for i, line := range lines {
		if i > 0 {
			switch layout {
			case Offset:
				fmt.Fprintf(&b, "0 -%d Td\n", lineLeading)
			case Matrix:
				fmt.Fprintf(&b, "1 0 0 1 72 %d Tm\n", 740-lineLeading*i)
			default:
				b.WriteString("T*\n")
			}
		}

		runs := strings.Split(line, "\t")
		for j, run := range runs {
			if j > 0 {
				fmt.Fprintf(&b, "%d 0 Td\n", runOffset)
			}
			fmt.Fprintf(&b, "(%s) Tj\n", escape(run))
		}
		if len(runs) > 1 {
			fmt.Fprintf(&b, "-%d 0 Td\n", runOffset*(len(runs)-1))
		}
	}
	b.WriteString("ET")
	return b.String()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
