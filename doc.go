// Package cvpdf lays résumé content out onto A4 pages and renders it to PDF.
//
// # Quick Start
//
// Create a generator, generate, and close when done:
//
//	gen, err := cvpdf.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	result, err := gen.Generate(ctx, cvpdf.Request{
//	    Subject:  "Jane Doe",
//	    Language: "en",
//	    Sections: []cvpdf.Section{
//	        {Kind: cvpdf.KindTitle, Text: "Jane Doe"},
//	        {Kind: cvpdf.KindBodyParagraph, Heading: "About Me", Text: "..."},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.Data, 0644)
//
// # Pipeline
//
// Generation follows these stages:
//
//  1. Profile photo acquisition (optional, bounded by a timeout, never fatal)
//  2. Composition: sections flow top to bottom, wrapping lines and breaking
//     pages before a line would pass the break line
//  3. Rendering of the composed Document (fpdf, headless Chrome or PNG)
//
// Composition is pure. The same sections, measurer and geometry always
// yield the same Document, which can be inspected before rendering:
//
//	composer, _ := cvpdf.NewComposer(cvpdf.A4(), cvpdf.NewCoreFontMeasurer())
//	doc, _ := composer.Compose(cvpdf.ComposeInput{Sections: sections, Year: 2025})
//	fmt.Println(doc.PageCount(), doc.Filename)
//
// # Renderers
//
// The default renderer writes PDF with go-pdf/fpdf and the Helvetica core
// font. The "chrome" renderer prints the HTML form of the document (see HTML)
// with headless Chrome, and "png" rasterises pages for previews:
//
//	gen, err := cvpdf.NewGenerator(
//	    cvpdf.WithRendererName("chrome", cvpdf.RendererOptions{Timeout: time.Minute}),
//	    cvpdf.WithImageSource(&cvpdf.URLSource{URL: photoURL}),
//	)
//
// Each renderer is paired with the Measurer whose metrics match its fonts;
// WithRendererName selects both.
//
// # Parallel Processing
//
// GeneratorPool hands out generators lazily, one per concurrent job:
//
//	pool := cvpdf.NewGeneratorPool(cvpdf.ResolvePoolSize(0))
//	defer pool.Close()
//
//	gen, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(gen)
//
// # Errors
//
// Sentinel errors are wrapped with context; test them with errors.Is:
//
//	if errors.Is(err, cvpdf.ErrInvalidGeometry) { ... }
//	if errors.Is(err, cvpdf.ErrBrowserConnect) { ... }
package cvpdf
