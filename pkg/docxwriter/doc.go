// Package docxwriter turns a JSON content tree into a Word document (DOCX).
//
// Basic Usage:
//
//	w := docxwriter.New(docxwriter.WithConfig(&docxwriter.Config{
//	    OutputDir: "out",
//	    Language:  "en-US",
//	    LogLevel:  "info",
//	}))
//	path, err := w.BuildFile(ctx, "data.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Input:
//
// The input is a JSON object with the required fields "title", "file_name"
// and "content". Content is an object, or a list of objects, whose entries
// are rendered in order. Each entry is classified by the shape of its value:
//
//	{"Intro": "text"}                                  heading + paragraphs
//	{"S": {"table": [["A","B"],["1","2"]]}}            table
//	{"S": {"list": ["x","y"], "list_type": "numbered"}} list
//	{"S": {"image": "fig.png", "width": 4}}            picture
//	{"S": {"page_break": true}}                        page break
//
// A value holding several shape keys uses the first of table, list, image
// and page_break. Section text is split on blank lines; a paragraph that
// starts with "- " or "* " becomes a bullet list.
//
// Lower level use:
//
// A Builder is one in-memory document. Renderers such as RenderSection and
// RenderTable take the builder explicitly; nothing is shared between
// builders except the read-only style Registry and, when set, a
// PictureCache.
//
//	b := docxwriter.NewBuilder(nil)
//	_ = docxwriter.RenderTitle(b, "Report")
//	_ = docxwriter.Dispatch(b, "Intro", "Hello")
//	_ = b.Save("report.docx")
package docxwriter
