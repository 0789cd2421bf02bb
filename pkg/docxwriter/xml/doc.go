// Package xml provides the WordprocessingML element model written by docxwriter.
//
// The types mirror the subset of the main document and styles parts that the
// renderers produce. Every element implements xml.Marshaler and writes its
// children in schema order with explicit "w:" (and "r:", "wp:", "a:", "pic:")
// qualified names, so the output needs no namespace post-processing.
//
// # Structure Organization
//
//   - types.go: Core interfaces (BodyElement, ParagraphContent, RunContent) and common types
//   - document.go: Top-level Document and Body structures
//   - section.go: Final section properties (page size and margins)
//   - paragraph.go: Paragraphs, their properties and hyperlinks
//   - run.go: Runs, run properties, Text and Break
//   - drawing.go: Inline pictures
//   - table.go: Table structures (Table, TableRow, TableCell), borders and properties
//   - styles.go: The styles part (document defaults and style definitions)
//
// # Usage
//
//	doc := xml.NewDocument()
//	doc.Body.Append(&xml.Paragraph{
//	    Content: []xml.ParagraphContent{
//	        xml.NewTextRun("Hello, world!", nil),
//	    },
//	})
//	data, err := xml.MarshalDocument(doc)
package xml
