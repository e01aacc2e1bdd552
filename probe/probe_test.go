package probe

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/putara/thumpsvg/fit"
	"github.com/tdewolff/test"
)

func TestSize(t *testing.T) {
	var tts = []struct {
		svg      string
		expected fit.Size
	}{
		{`<svg width="100" height="50"/>`, fit.Size{Width: 100, Height: 50}},
		{`<svg width="100px" height="50px"></svg>`, fit.Size{Width: 100, Height: 50}},
		{`<svg width='72pt' height='6pc'/>`, fit.Size{Width: 96, Height: 96}},
		{`<svg width="1in" height="2.54cm"/>`, fit.Size{Width: 96, Height: 96}},
		{`<svg width="25.4mm" height="101.6Q"/>`, fit.Size{Width: 96, Height: 96}},
		{`<svg viewBox="0 0 300 200"/>`, fit.Size{Width: 300, Height: 200}},
		{`<svg viewBox="10,10,300,200"/>`, fit.Size{Width: 300, Height: 200}},
		{`<svg width="100%" height="100%" viewBox="0 0 300 200"/>`, fit.Size{Width: 300, Height: 200}},
		{`<svg width="150" viewBox="0 0 300 200"/>`, fit.Size{Width: 150, Height: 100}},
		{`<svg height="100" viewBox="0 0 300 200"/>`, fit.Size{Width: 150, Height: 100}},
		{`<svg width="150" height="20em" viewBox="0 0 300 200"/>`, fit.Size{Width: 150, Height: 100}},
		{`<svg width="64" height="64" viewBox="0 0 300 200"/>`, fit.Size{Width: 64, Height: 64}},
		{`<?xml version="1.0"?><!DOCTYPE svg><!-- logo --><svg width="16" height="16"/>`, fit.Size{Width: 16, Height: 16}},
		{"\n  <svg:svg xmlns:svg=\"http://www.w3.org/2000/svg\" width=\"8\" height=\"4\"/>", fit.Size{Width: 8, Height: 4}},
		{`<svg width="10" height="10"><svg width="99" height="99"/></svg>`, fit.Size{Width: 10, Height: 10}},
	}
	for _, tt := range tts {
		t.Run(tt.svg, func(t *testing.T) {
			size, err := Size([]byte(tt.svg))
			test.Error(t, err)
			test.Float(t, size.Width, tt.expected.Width, "width")
			test.Float(t, size.Height, tt.expected.Height, "height")
		})
	}
}

func TestSizeErrors(t *testing.T) {
	var tts = []struct {
		svg string
		err error
	}{
		{``, ErrNoSVG},
		{`just text`, ErrNoSVG},
		{`<html><svg width="1" height="1"/></html>`, ErrNoSVG},
		{`<svg/>`, ErrNoSize},
		{`<svg width="100"/>`, ErrNoSize},
		{`<svg width="-5" height="10"/>`, ErrNoSize},
		{`<svg width="50%" height="50%"/>`, ErrNoSize},
		{`<svg viewBox="0 0 0 10"/>`, ErrNoSize},
		{`<svg viewBox="0 0 a b"/>`, ErrNoSize},
		{`<svg viewBox="0 0 10"/>`, ErrNoSize},
	}
	for _, tt := range tts {
		t.Run(tt.svg, func(t *testing.T) {
			_, err := Size([]byte(tt.svg))
			test.That(t, errors.Is(err, tt.err), err)
		})
	}
}

func TestParse(t *testing.T) {
	info, err := Parse([]byte(`<svg width="2in" viewBox="-1 -2 30 40.5">`))
	test.Error(t, err)
	test.Float(t, info.Width, 192.0)
	test.Float(t, info.Height, 0.0)
	test.That(t, info.HasViewBox)
	test.T(t, info.ViewBox, [4]float64{-1, -2, 30, 40.5})
}

func TestParseLength(t *testing.T) {
	var tts = []struct {
		v        string
		expected float64
	}{
		{"12", 12},
		{" 12.5 ", 12.5},
		{"1e2", 100},
		{"3PX", 3},
		{"12pt", 16},
		{"1pc", 16},
		{"10vw", 0},
		{"auto", 0},
		{"", 0},
		{"0", 0},
	}
	for _, tt := range tts {
		t.Run(tt.v, func(t *testing.T) {
			test.Float(t, parseLength(tt.v), tt.expected)
		})
	}
}
