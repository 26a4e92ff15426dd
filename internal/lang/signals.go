package lang

import "strings"

type signal struct {
	lang    Language
	pattern string // lowercase
	score   int
}

// contentSignals are matched against the lowercased document. Each pattern
// counts once no matter how often it occurs.
var contentSignals = []signal{
	{Python, "def ", 2},
	{Python, "import ", 2},
	{Python, "class ", 2},
	{Python, "print(", 2},
	{Python, "from ", 2},
	{Python, "elif ", 2},

	{CFamily, "#include", 4},
	{CFamily, "using namespace", 4},
	{CFamily, "int main(", 4},
	{CFamily, "std::", 2},

	{Java, "public class", 4},
	{Java, "public static void main", 4},
	{Java, "system.out.", 2},

	{HTML, "<html", 4},
	{HTML, "<body", 4},
	{HTML, "<div", 4},
	{HTML, "<!doctype html", 4},

	{PHP, "<?php", 6},
	{Shell, "#!/bin/", 6},
	{Shell, "#!/usr/bin/env bash", 6},
	{QML, "import qtquick", 6},

	{JavaScript, "function ", 4},
	{JavaScript, "var ", 4},
	{JavaScript, "let ", 4},
	{JavaScript, "const ", 4},
	{JavaScript, "console.log", 2},
	{JavaScript, "=> ", 2},
}

// minContentScore is the smallest winning score that counts as a detection.
const minContentScore = 4

// CollectEvidence scans content for language signals.
func CollectEvidence(content string) *Evidence {
	e := NewEvidence()
	if content == "" {
		return e
	}
	lower := strings.ToLower(content)
	for _, s := range contentSignals {
		if strings.Contains(lower, s.pattern) {
			e.Add(Hint{Lang: s.lang, Score: s.score, Reason: s.pattern})
		}
	}
	return e
}

// FromContent guesses the language of content. Weak evidence yields Text.
func FromContent(content string) Classification {
	c := Classifier{}.Classify(CollectEvidence(content))
	if c.Score < minContentScore {
		return Classification{Lang: Text, TotalScore: c.TotalScore}
	}
	return c
}
