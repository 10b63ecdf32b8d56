// Package printing turns label sheet HTML into PDF documents using a
// headless Chrome instance driven over the DevTools protocol.
//
// Example usage:
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer renderer.Close()
//
//	exporter := NewSheetExporter(renderer, logger)
//	pdf, err := exporter.ExportPDF(ctx, sheet)
package printing
