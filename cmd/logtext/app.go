package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/logtext/follow"
	"github.com/iw2rmb/logtext/logview/term"
)

// batchMsg carries one batch from the line source. ok is false once the
// source is exhausted.
type batchMsg struct {
	batch follow.Batch
	ok    bool
}

func waitBatch(src <-chan follow.Batch) tea.Cmd {
	return func() tea.Msg {
		b, ok := <-src
		return batchMsg{batch: b, ok: ok}
	}
}

// app feeds a line source into the log model.
type app struct {
	log      term.Model
	src      <-chan follow.Batch
	classify func(string) term.Line
	tail     bool
}

func newApp(m term.Model, src <-chan follow.Batch, classify func(string) term.Line, tail bool) app {
	return app{log: m, src: src, classify: classify, tail: tail}
}

func (a app) Init() tea.Cmd {
	return tea.Batch(a.log.Init(), waitBatch(a.src))
}

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if bm, ok := msg.(batchMsg); ok {
		if !bm.ok {
			v := a.log.LogView()
			if !a.tail {
				v.Finalize()
			}
			msg = term.StatusMsg(fmt.Sprintf("%d lines loaded", v.LineCount()))
			if a.tail {
				msg = term.StatusMsg("stopped following")
			}
		} else {
			if bm.batch.Reset {
				a.log.LogView().Clear()
			}
			lines := make(term.LinesMsg, len(bm.batch.Lines))
			for i, s := range bm.batch.Lines {
				lines[i] = a.classify(s)
			}
			msg = lines
			cmds = append(cmds, waitBatch(a.src))
		}
	}

	var cmd tea.Cmd
	a.log, cmd = a.log.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a app) View() string { return a.log.View() }
