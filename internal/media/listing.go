package media

// Share is a folder the host exposes.
type Share struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Listing is the host's catalog of media, grouped by kind.
type Listing struct {
	Shares      []Share `json:"shares"`
	Videos      []Item  `json:"videos"`
	Audios      []Item  `json:"audios"`
	Images      []Item  `json:"images"`
	Others      []Item  `json:"others"`
	VideosTotal int     `json:"videosTotal"`
	AudiosTotal int     `json:"audiosTotal"`
	ImagesTotal int     `json:"imagesTotal"`
	OthersTotal int     `json:"othersTotal"`
	Limited     bool    `json:"limited"`
	Scanning    bool    `json:"scanning"`
}

// ItemsOf returns the items of kind k. The slice is shared with the listing.
func (l *Listing) ItemsOf(k Kind) []Item {
	if l == nil {
		return nil
	}
	switch k {
	case KindVideo:
		return l.Videos
	case KindAudio:
		return l.Audios
	case KindImage:
		return l.Images
	case KindOther:
		return l.Others
	}
	return nil
}

// Total returns the host-reported count for kind k, which exceeds
// len(ItemsOf(k)) when the listing is limited.
func (l *Listing) Total(k Kind) int {
	if l == nil {
		return 0
	}
	total := 0
	switch k {
	case KindVideo:
		total = l.VideosTotal
	case KindAudio:
		total = l.AudiosTotal
	case KindImage:
		total = l.ImagesTotal
	case KindOther:
		total = l.OthersTotal
	}
	return max(total, len(l.ItemsOf(k)))
}

// Find returns the item of kind k with the given id.
func (l *Listing) Find(k Kind, id string) (Item, bool) {
	for _, it := range l.ItemsOf(k) {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
