package mcts

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"github.com/awalterschulze/gographviz"
	"github.com/othellobot/othello/game/reversi"
)

type statefulNode struct {
	*Node
}

func (s statefulNode) State() string {
	var buf bytes.Buffer
	for i, c := range s.board {
		if i%reversi.Size == 0 {
			fmt.Fprint(&buf, "⎢ ")
		}
		fmt.Fprintf(&buf, "%s ", c)
		if (i+1)%reversi.Size == 0 {
			fmt.Fprint(&buf, "⎥<BR />")
		}
	}
	return buf.String()
}

func (s statefulNode) MoveName() string {
	if !s.parent.isValid() {
		return "root"
	}
	return s.move.String()
}

// ToDot renders the live part of the tree in the graphviz dot language.
func (t *MCTS) ToDot() string {
	t.Lock()
	defer t.Unlock()

	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	g.SetDir(true)
	if !t.root.isValid() {
		return g.String()
	}

	var buf bytes.Buffer
	var walk func(n naughty)
	walk = func(n naughty) {
		N := t.nodeFromNaughty(n)
		tmpl.Execute(&buf, statefulNode{N})
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		g.AddNode("G", fmt.Sprintf("%v", n), attrs)
		buf.Reset()

		kids := append([]naughty(nil), t.children[n]...)
		sort.Sort(byMove{l: kids, t: t})
		for _, kid := range kids {
			walk(kid)
			g.AddEdge(fmt.Sprintf("%v", n), fmt.Sprintf("%v", kid), true, nil)
		}
	}
	walk(t.root)
	return g.String()
}

const tmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Node ID</TD><TD>{{.ID}}</TD></TR>
<TR><TD>Move</TD><TD>{{.MoveName}}</TD></TR>
<TR><TD>Player</TD><TD>{{.Mover}}</TD></TR>
<TR><TD>Visits</TD><TD>{{.Visits}}</TD></TR>
<TR><TD>Win Rate</TD><TD>{{.WinRate}}</TD></TR>
<TR><TD>State</TD><TD>{{.State}}</TD></TR>
</TABLE>
>
`

var tmpl *template.Template

func init() {
	tmpl = template.Must(template.New("name").Parse(tmplRaw))
}
