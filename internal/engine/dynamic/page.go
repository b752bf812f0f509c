package dynamic

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// Page is the slice of browser behaviour the scroll loop depends on
type Page interface {
	ScrollToBottom() error
	ScrollHeight() (int64, error)
	// ClickLoadMore clicks the first pagination control if it is visible and
	// reports whether a click happened.
	ClickLoadMore() (bool, error)
}

// loadMoreXPath matches "Next Page" links and "Load More" buttons or links
const loadMoreXPath = `//a[contains(text(), 'Next Page')] | //button[contains(text(), 'Load More')] | //a[contains(text(), 'Load More')]`

const scrollToBottomJS = `window.scrollTo(0, document.body.scrollHeight);`

const scrollHeightJS = `document.body.scrollHeight`

var clickLoadMoreJS = fmt.Sprintf(`(() => {
	const el = document.evaluate(%q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	if (!el) return false;
	const style = window.getComputedStyle(el);
	const rect = el.getBoundingClientRect();
	if (style.display === 'none' || style.visibility === 'hidden' || (rect.width === 0 && rect.height === 0)) return false;
	el.click();
	return true;
})()`, loadMoreXPath)

// browserPage drives a live chromedp tab
type browserPage struct {
	ctx context.Context
}

func newBrowserPage(ctx context.Context) *browserPage {
	return &browserPage{ctx: ctx}
}

func (p *browserPage) ScrollToBottom() error {
	return chromedp.Run(p.ctx, chromedp.Evaluate(scrollToBottomJS, nil))
}

func (p *browserPage) ScrollHeight() (int64, error) {
	var height int64
	if err := chromedp.Run(p.ctx, chromedp.Evaluate(scrollHeightJS, &height)); err != nil {
		return 0, err
	}
	return height, nil
}

func (p *browserPage) ClickLoadMore() (bool, error) {
	var clicked bool
	if err := chromedp.Run(p.ctx, chromedp.Evaluate(clickLoadMoreJS, &clicked)); err != nil {
		return false, err
	}
	return clicked, nil
}
