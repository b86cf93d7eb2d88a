package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type output struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Fields  []struct {
		Field string `json:"field"`
	} `json:"fields"`
}

func decode(t *testing.T, buf *bytes.Buffer) output {
	t.Helper()
	var out output
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out), buf.String())
	return out
}

func TestBindParsesFlagsAndArgs(t *testing.T) {
	var buf bytes.Buffer
	c := NewContext(context.Background(), "add-lesson", []string{"c1", "--duration", "15", "Intro"}, &buf)
	duration := c.Flags().Int("duration", 0, "")

	require.True(t, c.Bind(2, "<course-id> <title>"))
	assert.Equal(t, 15, *duration)
	assert.Equal(t, 2, c.NArg())
	assert.Equal(t, "c1", c.Arg(0))
	assert.Equal(t, "Intro", c.Arg(1))
	assert.Zero(t, buf.Len())
}

func TestBindWritesUsage(t *testing.T) {
	var buf bytes.Buffer
	c := NewContext(context.Background(), "enroll", nil, &buf)
	assert.False(t, c.Bind(1, "<course-id>"))

	out := decode(t, &buf)
	assert.False(t, out.Success)
	assert.Equal(t, "usage: enroll <course-id>", out.Error)
	require.Len(t, out.Fields, 1)
	assert.Equal(t, "args", out.Fields[0].Field)
}

func TestBindRejectsUnknownFlag(t *testing.T) {
	var buf bytes.Buffer
	c := NewContext(context.Background(), "courses", []string{"--bogus"}, &buf)
	assert.False(t, c.Bind(0, ""))
	assert.Contains(t, decode(t, &buf).Error, "bogus")
}

func TestParseAnswers(t *testing.T) {
	answers, err := parseAnswers([]string{"q1=0,2", "q2=1", "q3=", "q1= 3"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3}, answers["q1"])
	assert.Equal(t, []int{1}, answers["q2"])
	assert.Empty(t, answers["q3"])
	assert.Contains(t, answers, "q3")

	_, err = parseAnswers([]string{"q1"})
	assert.Error(t, err)
	_, err = parseAnswers([]string{"=1"})
	assert.Error(t, err)
	_, err = parseAnswers([]string{"q1=a"})
	assert.Error(t, err)
}
