package lyrics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestParse_Basic(t *testing.T) {
	lrc := `[ar:Test Artist]
[ti:Test Title]
[al:Test Album]
[00:12.34]First line
[00:15.67]Second line
[00:20.00]Third line`

	lyrics, err := Parse(strings.NewReader(lrc))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if lyrics.Artist != "Test Artist" {
		t.Errorf("Artist = %q, want %q", lyrics.Artist, "Test Artist")
	}
	if lyrics.Title != "Test Title" {
		t.Errorf("Title = %q, want %q", lyrics.Title, "Test Title")
	}
	if lyrics.Album != "Test Album" {
		t.Errorf("Album = %q, want %q", lyrics.Album, "Test Album")
	}

	if len(lyrics.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(lyrics.Lines))
	}

	expected := []Line{
		{12*time.Second + ms(340), "First line"},
		{15*time.Second + ms(670), "Second line"},
		{20 * time.Second, "Third line"},
	}
	for i, exp := range expected {
		if lyrics.Lines[i] != exp {
			t.Errorf("Lines[%d] = %+v, want %+v", i, lyrics.Lines[i], exp)
		}
	}
}

func TestParse_MultipleTimestamps(t *testing.T) {
	lrc := "[01:30.00][00:30.00]Chorus line\n[01:00.00]Verse"

	lyrics := ParseString(lrc)

	want := []Line{
		{30 * time.Second, "Chorus line"},
		{time.Minute, "Verse"},
		{90 * time.Second, "Chorus line"},
	}
	if len(lyrics.Lines) != len(want) {
		t.Fatalf("len(Lines) = %d, want %d", len(lyrics.Lines), len(want))
	}
	for i := range want {
		if lyrics.Lines[i] != want[i] {
			t.Errorf("Lines[%d] = %+v, want %+v", i, lyrics.Lines[i], want[i])
		}
	}
}

func TestParse_FractionFormats(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"[00:05]x", 5 * time.Second},
		{"[00:05.5]x", 5*time.Second + ms(500)},
		{"[00:05.05]x", 5*time.Second + ms(50)},
		{"[00:05.123]x", 5*time.Second + ms(123)},
		{"[00:05,250]x", 5*time.Second + ms(250)},
		{"[1:02.3]x", time.Minute + 2*time.Second + ms(300)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lyrics := ParseString(tt.input)
			if len(lyrics.Lines) != 1 {
				t.Fatalf("len(Lines) = %d, want 1", len(lyrics.Lines))
			}
			if lyrics.Lines[0].Time != tt.want {
				t.Errorf("Time = %v, want %v", lyrics.Lines[0].Time, tt.want)
			}
		})
	}
}

func TestParse_IgnoresUntimedAndStripsTags(t *testing.T) {
	lrc := "plain text\r\n[by:someone]\r\n[00:01.00]<b>[x]Hello [tag]world\r[00:02.00]  spaced  \n\n"

	lyrics := ParseString(lrc)

	if len(lyrics.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2: %+v", len(lyrics.Lines), lyrics.Lines)
	}
	if lyrics.Lines[0].Text != "<b>Hello world" {
		t.Errorf("Lines[0].Text = %q", lyrics.Lines[0].Text)
	}
	if lyrics.Lines[1].Text != "spaced" {
		t.Errorf("Lines[1].Text = %q", lyrics.Lines[1].Text)
	}
}

func TestParse_StableTies(t *testing.T) {
	lyrics := ParseString("[00:03.00]first\n[00:01.00]early\n[00:03.00]second")

	got := []string{lyrics.Lines[0].Text, lyrics.Lines[1].Text, lyrics.Lines[2].Text}
	want := []string{"early", "first", "second"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order = %v, want %v", got, want)
			break
		}
	}
}

func TestLyrics_Locate(t *testing.T) {
	lyrics := &Lyrics{Lines: []Line{
		{0, "a"},
		{2 * time.Second, "b"},
		{5 * time.Second, "c"},
	}}

	tests := []struct {
		pos  time.Duration
		want int
	}{
		{1900 * time.Millisecond, 0},
		{1950 * time.Millisecond, 1},
		{2 * time.Second, 1},
		{4 * time.Second, 1},
		{10 * time.Second, 2},
	}
	for _, tt := range tests {
		if got := lyrics.Locate(tt.pos); got != tt.want {
			t.Errorf("Locate(%v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestLyrics_Locate_BeforeFirstLine(t *testing.T) {
	lyrics := &Lyrics{Lines: []Line{{3 * time.Second, "a"}, {4 * time.Second, "b"}}}
	if got := lyrics.Locate(time.Second); got != 0 {
		t.Errorf("Locate before first line = %d, want 0", got)
	}
}

func TestLyrics_Locate_Empty(t *testing.T) {
	if got := (&Lyrics{}).Locate(time.Second); got != -1 {
		t.Errorf("Locate on empty lyrics = %d, want -1", got)
	}
	var nilLyrics *Lyrics
	if got := nilLyrics.Locate(time.Second); got != -1 {
		t.Errorf("Locate on nil lyrics = %d, want -1", got)
	}
}

func TestCursor_Update(t *testing.T) {
	c := NewCursor(&Lyrics{Lines: []Line{{0, "a"}, {2 * time.Second, "b"}}})
	if c.Active() != -1 {
		t.Fatalf("initial Active = %d, want -1", c.Active())
	}

	idx, changed := c.Update(500*time.Millisecond, false)
	if idx != 0 || !changed {
		t.Errorf("first Update = (%d, %v), want (0, true)", idx, changed)
	}

	idx, changed = c.Update(time.Second, false)
	if idx != 0 || changed {
		t.Errorf("same-line Update = (%d, %v), want (0, false)", idx, changed)
	}

	idx, changed = c.Update(time.Second, true)
	if idx != 0 || !changed {
		t.Errorf("forced Update = (%d, %v), want (0, true)", idx, changed)
	}

	idx, changed = c.Update(3*time.Second, false)
	if idx != 1 || !changed {
		t.Errorf("next-line Update = (%d, %v), want (1, true)", idx, changed)
	}
}

func TestCursor_Empty(t *testing.T) {
	c := NewCursor(&Lyrics{})
	if idx, changed := c.Update(time.Second, true); idx != -1 || changed {
		t.Errorf("Update on empty = (%d, %v), want (-1, false)", idx, changed)
	}
	var nilCursor *Cursor
	if nilCursor.Active() != -1 || nilCursor.Lyrics() != nil {
		t.Error("nil cursor should report no lyrics")
	}
}

type fakeFetcher struct {
	text string
	err  error
}

func (f fakeFetcher) FetchText(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

func TestSource_Fetch(t *testing.T) {
	src := NewSource(fakeFetcher{text: "[00:01.00]hi"})
	res := src.Fetch(context.Background(), "lrc-id")
	if res.Err != nil {
		t.Fatalf("Fetch error: %v", res.Err)
	}
	if res.LyricsID != "lrc-id" || len(res.Lyrics.Lines) != 1 {
		t.Errorf("Fetch = %+v", res)
	}

	res = NewSource(fakeFetcher{err: errors.New("offline")}).Fetch(context.Background(), "lrc-id")
	if res.Err == nil || res.Lyrics != nil {
		t.Errorf("Fetch with failing fetcher = %+v, want error", res)
	}

	res = src.Fetch(context.Background(), "")
	if !errors.Is(res.Err, ErrNoLyrics) {
		t.Errorf("Fetch without id error = %v, want ErrNoLyrics", res.Err)
	}
}
