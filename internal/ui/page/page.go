package page

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"flashysurf/internal/domain"
	"flashysurf/internal/ui/carousel"
	"flashysurf/internal/ui/feature"
	"flashysurf/internal/ui/reveal"
)

// Markup hooks the site's templates use.
const (
	classTrack        = "slideshow-track"
	classNext         = "next-btn"
	classPrev         = "prev-btn"
	classDots         = "slideshow-dots"
	classDot          = "dot"
	classActive       = "active"
	classNoTransition = "notransition"
	classAnimated     = "animated-item"
	classVisible      = "is-visible"
	classFeatureBtn   = "feature-list-btn"
	attrImageSrc      = "data-image-src"
	idFeatureImage    = "feature-display-image"
)

// ErrNotBound is returned when an interaction targets a feature the page
// does not have.
var ErrNotBound = errors.New("page: feature not present")

// Options tunes how components are attached.
type Options struct {
	// InitialSlide is passed to carousel.WithInitialSlide.
	InitialSlide int
	// ExtensionHost marks extension-store links; defaults to
	// domain.DefaultExtensionHost.
	ExtensionHost string
	// Scheduler drives the feature image swap; nil uses wall-clock timers.
	Scheduler feature.Scheduler
	Logger    *slog.Logger
}

// Summary reports which interactive features were found on a page.
type Summary struct {
	Carousel       bool `json:"carousel" yaml:"carousel"`
	Slides         int  `json:"slides" yaml:"slides"`
	RevealItems    int  `json:"reveal_items" yaml:"reveal_items"`
	FeatureButtons int  `json:"feature_buttons" yaml:"feature_buttons"`
	ExtensionLinks int  `json:"extension_links" yaml:"extension_links"`
}

// Page is a parsed document with its interactive components attached.
type Page struct {
	mu  sync.Mutex
	doc *html.Node
	log *slog.Logger

	carousel *carousel.Controller
	slides   []string

	items  []*html.Node
	reveal *reveal.Watcher[int]

	features   *feature.Switcher
	featureBtn []*html.Node

	links []string
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// Bind attaches every component whose markup is present in doc. Missing
// markup silently leaves the corresponding component unbound.
func Bind(doc *html.Node, opts Options) *Page {
	p := &Page{doc: doc, log: opts.Logger}
	if p.log == nil {
		p.log = slog.Default()
	}
	p.bindReveal()
	p.bindCarousel(opts.InitialSlide)
	p.bindFeatures(opts.Scheduler)
	p.bindLinks(opts.ExtensionHost)
	return p
}

func (p *Page) bindReveal() {
	p.items = findAll(p.doc, byClass(classAnimated))
	p.reveal = reveal.NewWatcher(reveal.DefaultThreshold, func(i int) {
		addClass(p.items[i], classVisible)
	})
	for i := range p.items {
		p.reveal.Observe(i)
	}
}

func (p *Page) bindCarousel(initial int) {
	track := findFirst(p.doc, byClass(classTrack))
	if track == nil {
		return
	}
	next := findFirst(p.doc, byClass(classNext))
	prev := findFirst(p.doc, byClass(classPrev))
	dots := findFirst(p.doc, byClass(classDots))
	if next == nil || prev == nil || dots == nil {
		p.log.Debug("carousel controls missing, not binding",
			"next", next != nil, "prev", prev != nil, "dots", dots != nil)
		return
	}

	children := elementChildren(track)
	view := &trackView{track: track, nav: dots}
	c, err := carousel.New(len(children),
		carousel.WithView(view),
		carousel.WithInitialSlide(initial),
		carousel.WithLogger(p.log),
	)
	if err != nil {
		p.log.Debug("carousel not bound", "error", err)
		return
	}
	p.carousel = c
	for _, n := range children {
		p.slides = append(p.slides, slideLabel(n))
	}
}

// slideLabel names a slide after its alt text, title or image source.
func slideLabel(n *html.Node) string {
	for _, key := range []string{"alt", "title", "src"} {
		if v := getAttr(n, key); v != "" {
			return v
		}
	}
	if img := findFirst(n, func(c *html.Node) bool { return c.Data == "img" }); img != nil && img != n {
		return slideLabel(img)
	}
	return textContent(n)
}

func (p *Page) bindFeatures(sched feature.Scheduler) {
	btns := findAll(p.doc, byClass(classFeatureBtn))
	img := findFirst(p.doc, byID(idFeatureImage))
	if len(btns) == 0 || img == nil {
		return
	}

	buttons := make([]feature.Button, len(btns))
	for i, b := range btns {
		buttons[i] = feature.Button{
			Label:    textContent(b),
			ImageSrc: getAttr(b, attrImageSrc),
			Active:   hasClass(b, classActive),
		}
	}
	sw, err := feature.New(buttons, &imageView{page: p, img: img},
		feature.WithScheduler(sched),
		feature.WithSelectHook(func(active int) {
			p.mu.Lock()
			defer p.mu.Unlock()
			for j, b := range btns {
				toggleClass(b, classActive, j == active)
			}
		}),
	)
	if err != nil {
		p.log.Debug("feature list not bound", "error", err)
		return
	}
	p.features = sw
	p.featureBtn = btns
}

func (p *Page) bindLinks(host string) {
	if host == "" {
		host = domain.DefaultExtensionHost
	}
	for _, a := range findAll(p.doc, func(n *html.Node) bool { return n.Data == "a" }) {
		if href := getAttr(a, "href"); strings.Contains(href, host) {
			p.links = append(p.links, href)
		}
	}
}

// Carousel returns the bound slideshow controller, or nil.
func (p *Page) Carousel() *carousel.Controller { return p.carousel }

// Features returns the bound feature switcher, or nil.
func (p *Page) Features() *feature.Switcher { return p.features }

// SlideLabels describes each bound slide, in order.
func (p *Page) SlideLabels() []string {
	out := make([]string, len(p.slides))
	copy(out, p.slides)
	return out
}

// ExtensionLinks returns the hrefs of links to the extension store.
func (p *Page) ExtensionLinks() []string {
	out := make([]string, len(p.links))
	copy(out, p.links)
	return out
}

// ClickNext handles a click on the slideshow's next button.
func (p *Page) ClickNext() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.carousel == nil {
		return ErrNotBound
	}
	p.carousel.Next()
	return nil
}

// ClickPrev handles a click on the slideshow's previous button.
func (p *Page) ClickPrev() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.carousel == nil {
		return ErrNotBound
	}
	p.carousel.Prev()
	return nil
}

// ClickDot handles a click on the slideshow indicator at i.
func (p *Page) ClickDot(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.carousel == nil {
		return ErrNotBound
	}
	return p.carousel.Select(i)
}

// Scroll reports that ratio of the i-th animated item is in view. It returns
// true when the item was revealed by this call.
func (p *Page) Scroll(i int, ratio float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reveal.Intersect(i, ratio)
}

// ClickFeature handles a click on the i-th feature button.
func (p *Page) ClickFeature(i int) error {
	if p.features == nil {
		return ErrNotBound
	}
	// The switcher holds its own lock while calling back into the page,
	// which takes p.mu; never call it with p.mu held.
	return p.features.Click(i)
}

// Summary reports which components were bound.
func (p *Page) Summary() Summary {
	s := Summary{
		RevealItems:    len(p.items),
		ExtensionLinks: len(p.links),
	}
	if p.carousel != nil {
		s.Carousel = true
		s.Slides = p.carousel.Len()
	}
	if p.features != nil {
		s.FeatureButtons = len(p.featureBtn)
	}
	return s
}

// Render writes the document in its current state.
func (p *Page) Render(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return html.Render(w, p.doc)
}

// trackView applies carousel side effects to the slideshow markup.
type trackView struct {
	track *html.Node
	nav   *html.Node
	dots  []*html.Node
}

func (v *trackView) CreateIndicators(n int) {
	for i := 0; i < n; i++ {
		dot := newButton(classDot)
		setAttr(dot, "aria-label", "Slide "+strconv.Itoa(i+1))
		v.nav.AppendChild(dot)
		v.dots = append(v.dots, dot)
	}
}

func (v *trackView) SetIndicator(i int, active bool) {
	toggleClass(v.dots[i], classActive, active)
}

func (v *trackView) Translate(i int) {
	setStyle(v.track, "transform", fmt.Sprintf("translateX(-%d%%)", 100*i))
}

func (v *trackView) SetTransitions(enabled bool) {
	toggleClass(v.track, classNoTransition, !enabled)
}

// imageView applies feature switcher side effects to the display image.
type imageView struct {
	page *Page
	img  *html.Node
}

func (v *imageView) SetOpacity(o float64) {
	v.page.mu.Lock()
	defer v.page.mu.Unlock()
	setStyle(v.img, "opacity", strconv.FormatFloat(o, 'g', -1, 64))
}

func (v *imageView) SetSource(src string) {
	v.page.mu.Lock()
	defer v.page.mu.Unlock()
	setAttr(v.img, "src", src)
}
