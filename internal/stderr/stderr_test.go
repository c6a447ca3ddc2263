package stderr

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestForward(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	forward(strings.NewReader("ALSA lib pcm.c: underrun\n\n  \nsecond line  \n"), logrus.NewEntry(logger))

	assert.Equal(t, "ALSA lib pcm.c: underrun", <-Messages)
	assert.Equal(t, "second line", <-Messages)
	assert.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, "second line", hook.LastEntry().Message)
}
