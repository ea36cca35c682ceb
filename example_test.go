package pdfscan_test

import (
	"context"
	"fmt"
	"log"
	"time"

	pdfscan "github.com/porticus-lab/go-pdf-scan"
)

func Example() {
	// Launch a visible browser (the operator logs in and opens the PDF
	// in it by hand).
	sc, err := pdfscan.NewScanner(pdfscan.DefaultScanConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer sc.Close()

	ctx := context.Background()

	// ... operator opens the PDF, then:
	v, err := sc.LocatePDF(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if err := v.WaitLoaded(ctx); err != nil {
		log.Fatal(err)
	}

	// Size the window so one viewport holds one page. PDF.js viewers
	// report the page count; generic viewers return 0 and the operator
	// supplies one.
	count, err := v.Prepare(ctx)
	if err != nil {
		log.Fatal(err)
	}

	res, err := sc.Scan(ctx, v, pdfscan.Job{
		OutputDir: "out",
		Pages:     count,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("captured %d pages in %s\n", res.Count(), res.Elapsed())
}

func Example_pageRange() {
	sc, err := pdfscan.NewScanner(pdfscan.ScanConfig{
		PageWait:  2 * time.Second,
		NoSandbox: true,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer sc.Close()

	ctx := context.Background()

	v, err := sc.LocatePDF(ctx)
	if err != nil {
		log.Fatal(err)
	}

	// Capture pages 10-14 only, as JPEG.
	if err := v.GoToPage(ctx, 10); err != nil {
		log.Fatal(err)
	}
	res, err := sc.Scan(ctx, v, pdfscan.Job{
		OutputDir: "out/chapter-2",
		Pages:     5,
		StartPage: 10,
		Format:    pdfscan.JPEG,
		Quality:   80,
		Progress: func(img pdfscan.PageImage) {
			fmt.Printf("saved %s\n", img.Path)
		},
	})
	if err != nil {
		// A mid-scan failure still reports what was written.
		log.Fatalf("scan aborted after %d pages: %v", res.Count(), err)
	}
}
