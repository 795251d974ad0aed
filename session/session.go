// Package session drives the interactive console loop on top of the
// state machine in state.go.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"pdf_pages/pdf"
)

// ErrNoFile is returned by Run when the session ends before any file was opened.
var ErrNoFile = errors.New("no file chosen")

const menuText = `What should be done with the file?
1 - Extract pages into a new file;
2 - Select pages and rotate them;
3 - Delete selected pages;
4 - Append other files to this one;
5 - Split the file into single pages;
6 - Choose another file;
0 - Exit.`

// Config holds the collaborators of a session.
type Config struct {
	In    io.Reader
	Out   io.Writer
	Codec pdf.Codec
	// Viewer opens a file for viewing; nil disables the prompt
	Viewer func(path string) error
	Log    logrus.FieldLogger
}

// Session is one interactive run of the tool.
type Session struct {
	in     *bufio.Scanner
	out    io.Writer
	codec  pdf.Codec
	viewer func(string) error
	log    logrus.FieldLogger

	state  State
	path   string
	doc    *pdf.Document
	opened bool
	eof    bool
	err    error
}

// New creates a session in the PickFile state.
func New(config Config) *Session {
	log := config.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{
		in:     bufio.NewScanner(config.In),
		out:    config.Out,
		codec:  config.Codec,
		viewer: config.Viewer,
		log:    log,
		state:  StatePickFile,
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Run loops until the user exits. If path is not empty it is opened first
// instead of asking for a file. A non-nil error means the session could not
// start: no file was chosen or the first file could not be read.
func (s *Session) Run(path string) error {
	for s.state != StateExit {
		var ev Event
		switch s.state {
		case StatePickFile:
			ev = s.pickFile(path)
			path = ""
		case StateReady:
			ev = s.menu()
		case StateExtracting:
			ev = s.extract()
		case StateRotating:
			ev = s.rotate()
		case StateDeleting:
			ev = s.remove()
		case StateMerging:
			ev = s.merge()
		case StateSplitting:
			ev = s.split()
		}

		next := Next(s.state, ev)
		s.log.WithFields(logrus.Fields{
			"from":  s.state,
			"event": ev,
			"to":    next,
		}).Debug("Session transition")
		s.state = next

		if !s.state.holdsDocument() {
			s.doc = nil
		}
	}
	return s.err
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// ask prints prompt and reads one trimmed line. End of input reads as "".
func (s *Session) ask(prompt string) string {
	s.printf("%s", prompt)
	if !s.in.Scan() {
		s.eof = true
		s.printf("\n")
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

func (s *Session) pickFile(path string) Event {
	if path == "" {
		path = s.ask("Path to a PDF file (empty to quit): ")
	}
	if path == "" {
		if !s.opened {
			s.err = ErrNoFile
		}
		return EventCancelled
	}

	doc, err := pdf.OpenFile(s.codec, path)
	if err != nil {
		s.log.WithError(err).WithField("file", path).Warn("Failed to open file")
		s.printf("Cannot open %s: %v\n", path, err)
		if !s.opened && !errors.Is(err, pdf.ErrDecode) {
			s.err = err
			return EventCancelled
		}
		return EventOpenFailed
	}

	s.path, s.doc, s.opened = path, doc, true
	s.printf("Opened file: %s (%d pages).\n", path, doc.PageCount())

	if s.viewer != nil && s.ask("Open the file for viewing? (1-yes): ") == "1" {
		if err := s.viewer(path); err != nil {
			s.log.WithError(err).Warn("Viewer failed")
			s.printf("Cannot open the file for viewing: %v\n", err)
		}
	}
	return EventOpened
}

func (s *Session) menu() Event {
	s.printf("%s\n", menuText)
	choice := s.ask("Your choice? - ")
	if s.eof {
		return EventQuit
	}
	return Event(choice)
}

func (s *Session) selectPages() pdf.Selection {
	s.printf("Number of pages in the file: %d\n", s.doc.PageCount())
	input := s.ask("Enter page numbers separated by commas (all - every page): ")
	sel := pdf.ParseSelection(input, s.doc.PageCount())
	if sel.Empty() {
		s.printf("Warning! No pages selected!\n")
	} else {
		s.printf("Selected %d pages: %s\n", len(sel), sel)
	}
	return sel
}

func (s *Session) extract() Event {
	sel := s.selectPages()
	return s.save(pdf.Extract(s.doc, sel), pdf.SuffixSelected)
}

func (s *Session) rotate() Event {
	sel := s.selectPages()
	angle, err := pdf.ParseAngle(s.ask("Rotate by how many degrees (90, 180, 270)? - "))
	if err != nil {
		s.printf("%v; pages are left unrotated.\n", err)
	}
	return s.save(pdf.Rotate(s.doc, sel, angle), pdf.SuffixRotated)
}

func (s *Session) remove() Event {
	sel := s.selectPages()
	return s.save(pdf.RemovePages(s.doc, sel), pdf.SuffixCleared)
}

func (s *Session) merge() Event {
	var paths []string
	var docs []*pdf.Document
	for {
		if path := s.ask("File to append (empty to skip): "); path != "" {
			doc, err := pdf.OpenFile(s.codec, path)
			if err != nil {
				s.log.WithError(err).WithField("file", path).Warn("Failed to open file for merge")
				s.printf("Cannot open %s: %v\n", path, err)
			} else {
				paths = append(paths, path)
				docs = append(docs, doc)
				s.printf("Added file: %s\n", path)
			}
		}
		if s.ask("Add another file to merge? (1-yes, 0-no): ") != "1" {
			break
		}
	}
	s.printf("Files to append: %s\n", strings.Join(paths, ", "))
	return s.save(pdf.Merge(s.doc, docs...), pdf.SuffixMerged)
}

func (s *Session) split() Event {
	written, err := pdf.SaveSplit(s.codec, s.doc, pdf.SplitBase(s.path))
	for _, path := range written {
		s.printf("Saved: %s\n", path)
	}
	if err != nil {
		s.log.WithError(err).WithField("file", s.path).Error("Split failed")
		s.printf("Split failed: %v\n", err)
		return EventFailed
	}
	return EventDone
}

// save asks for a target name and writes doc. The source document is untouched.
func (s *Session) save(doc *pdf.Document, modifier string) Event {
	if doc.PageCount() == 0 {
		s.printf("Nothing to save: the result has no pages.\n")
		return EventDone
	}

	suggested := pdf.SuggestName(s.path, modifier)
	target := s.ask(fmt.Sprintf("Save as [%s]: ", suggested))
	if target == "" {
		target = suggested
	}

	path, err := pdf.SaveFile(s.codec, doc, target)
	if err != nil {
		s.log.WithError(err).WithField("file", target).Error("Save failed")
		s.printf("Save failed: %v\n", err)
		return EventFailed
	}
	s.log.WithFields(logrus.Fields{
		"file":  path,
		"pages": doc.PageCount(),
	}).Info("Document saved")
	s.printf("Saved: %s\n", path)
	return EventDone
}
