// Package fetcher drives headless Chrome to load the waiting-list page and
// extract the visible text of every table row.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const rowSelector = "table tbody tr"

// Config controls page navigation.
type Config struct {
	URL        string
	NavTimeout time.Duration
	UserAgent  string
}

// Fetcher owns a headless Chrome allocator for its lifetime and opens one
// tab per fetch.
type Fetcher struct {
	cfg         Config
	allocator   context.Context
	allocCancel context.CancelFunc
	logger      *zap.Logger
}

// New creates a fetcher backed by chromedp.
func New(cfg Config, logger *zap.Logger) (*Fetcher, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("fetcher URL must be set")
	}
	if cfg.NavTimeout <= 0 {
		cfg.NavTimeout = 60 * time.Second
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Fetcher{
		cfg:         cfg,
		allocator:   allocCtx,
		allocCancel: allocCancel,
		logger:      logger,
	}, nil
}

// Close releases the browser allocator.
func (f *Fetcher) Close() {
	f.allocCancel()
}

// FetchRows loads the page and returns each data-table row's visible text in
// document order. The first attempt waits for table rows to be visible; if
// that deadline expires the page is retried once waiting only for the basic
// load criterion. Any failure after the retry propagates to the caller.
func (f *Fetcher) FetchRows(ctx context.Context) ([]string, error) {
	f.logger.Info("Loading waiting list page", zap.String("url", f.cfg.URL))

	html, err := f.render(ctx, f.quiescentTasks())
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("load page: %w", err)
		}
		f.logger.Warn("Row visibility wait timed out; retrying with basic load criterion")
		html, err = f.render(ctx, f.basicLoadTasks())
		if err != nil {
			return nil, fmt.Errorf("load page after retry: %w", err)
		}
	}

	rows, err := rowTexts(html)
	if err != nil {
		return nil, fmt.Errorf("extract rows: %w", err)
	}
	f.logger.Info("Located table rows", zap.Int("count", len(rows)))
	return rows, nil
}

// render opens a fresh tab under the allocator, runs tasks with the
// navigation timeout applied, and returns the rendered DOM. The tab is
// cancelled on every exit path.
func (f *Fetcher) render(ctx context.Context, tasks func(html *string) chromedp.Tasks) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(f.allocator)
	defer cancelTab()

	taskCtx, cancelTask := context.WithTimeout(tabCtx, f.cfg.NavTimeout)
	defer cancelTask()

	stopForward := forwardCancel(ctx, cancelTask)
	defer stopForward()

	var html string
	if err := chromedp.Run(taskCtx, tasks(&html)); err != nil {
		return "", fmt.Errorf("chromedp run: %w", err)
	}
	return html, nil
}

// quiescentTasks waits until the data table has rendered rows.
func (f *Fetcher) quiescentTasks() func(html *string) chromedp.Tasks {
	return func(html *string) chromedp.Tasks {
		return chromedp.Tasks{
			network.Enable(),
			f.userAgentAction(),
			chromedp.Navigate(f.cfg.URL),
			chromedp.WaitVisible(rowSelector, chromedp.ByQuery),
			chromedp.OuterHTML("html", html, chromedp.ByQuery),
		}
	}
}

// basicLoadTasks only requires the document body to be ready, then allows a
// short settle window for late script output.
func (f *Fetcher) basicLoadTasks() func(html *string) chromedp.Tasks {
	return func(html *string) chromedp.Tasks {
		return chromedp.Tasks{
			network.Enable(),
			f.userAgentAction(),
			chromedp.Navigate(f.cfg.URL),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Sleep(2 * time.Second),
			chromedp.OuterHTML("html", html, chromedp.ByQuery),
		}
	}
}

func (f *Fetcher) userAgentAction() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if f.cfg.UserAgent == "" {
			return nil
		}
		if err := emulation.SetUserAgentOverride(f.cfg.UserAgent).Do(ctx); err != nil {
			return fmt.Errorf("set user-agent: %w", err)
		}
		return nil
	})
}

// rowTexts extracts every table-body row's visible text, cell texts joined
// by single spaces, whitespace normalized per cell.
func rowTexts(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var rows []string
	doc.Find(rowSelector).Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			if text := strings.Join(strings.Fields(cell.Text()), " "); text != "" {
				cells = append(cells, text)
			}
		})
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, " "))
		}
	})
	return rows, nil
}

// forwardCancel propagates cancellation of the cycle context into an
// in-flight chromedp task.
func forwardCancel(parent context.Context, cancel context.CancelFunc) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-parent.Done():
			cancel()
		case <-done:
		}
	}()
	return func() { close(done) }
}
