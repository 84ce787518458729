package timeline

// Kind discriminates the item variants placed on the timeline.
type Kind int

const (
	KindMedia Kind = iota
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindMedia:
		return "media"
	case KindText:
		return "text"
	}
	return "unknown"
}

// ParseKind maps a manifest kind string to its variant tag.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "media":
		return KindMedia, nil
	case "text":
		return KindText, nil
	}
	return 0, badKindf("%q", s)
}

// Item is the placement shared by every timeline element. Start and Duration
// are frame counts; the end frame Start+Duration is exclusive.
type Item struct {
	ID       string
	Start    int
	Duration int
	Row      int
}

// End returns the exclusive end frame of the item.
func (it Item) End() int { return it.Start + it.Duration }

// MediaClip is a placed media element referencing external media by locator.
// Decoding the media is the playback backend's job, never the engine's.
type MediaClip struct {
	Item
	Source string
}

// TextOverlay is a placed text element.
type TextOverlay struct {
	Item
	Text string
}

func newItem(id string, start, duration int) (Item, error) {
	if duration <= 0 {
		return Item{}, invalidf("item %s: duration %d must be positive", id, duration)
	}
	if start < 0 {
		return Item{}, invalidf("item %s: start %d must not be negative", id, start)
	}
	return Item{ID: id, Start: start, Duration: duration}, nil
}

// NewMediaClip validates the placement contract and builds a media clip.
func NewMediaClip(id string, start, duration int, source string) (MediaClip, error) {
	it, err := newItem(id, start, duration)
	if err != nil {
		return MediaClip{}, err
	}
	return MediaClip{Item: it, Source: source}, nil
}

// NewTextOverlay validates the placement contract and builds a text overlay.
func NewTextOverlay(id string, start, duration int, text string) (TextOverlay, error) {
	it, err := newItem(id, start, duration)
	if err != nil {
		return TextOverlay{}, err
	}
	return TextOverlay{Item: it, Text: text}, nil
}
