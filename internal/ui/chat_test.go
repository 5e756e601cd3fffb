package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/eora-ai/eora/internal/session"
)

func newSizedChat() *Chat {
	c := NewChat()
	c.SetSize(80, 30)
	return c
}


func TestChat_Welcome(t *testing.T) {
	c := newSizedChat()
	if !strings.Contains(ansi.Strip(c.View()), "EORA AI에 오신 것을 환영합니다") {
		t.Error("empty chat should show the welcome block")
	}
}


func TestChat_MessagesAndAppend(t *testing.T) {
	c := newSizedChat()
	c.SetMessages("s1", []session.Message{
		{Role: session.RoleUser, Content: "안녕"},
		{Role: session.RoleAssistant, Content: "**반가워요**"},
	})

	out := ansi.Strip(c.View())
	for _, want := range []string{"나:", "안녕", "EORA:", "반가워요"} {
		if !strings.Contains(out, want) {
			t.Errorf("chat missing %q", want)
		}
	}
	if strings.Contains(out, "**") {
		t.Error("markdown markers should be rendered away")
	}

	c.AppendMessage("other", session.Message{Role: session.RoleUser, Content: "lost"})
	if len(c.Messages()) != 2 {
		t.Error("messages for another session must be dropped")
	}

	c.AppendMessage("s1", session.Message{Role: session.RoleUser, Content: "more"})
	if len(c.Messages()) != 3 {
		t.Error("messages for the shown session should be appended")
	}
}


func TestChat_AppendAdoptsSession(t *testing.T) {
	c := newSizedChat()
	c.Clear()
	c.AppendMessage("new", session.Message{Role: session.RoleUser, Content: "hi"})
	if c.SessionID() != "new" {
		t.Errorf("SessionID() = %q", c.SessionID())
	}
}


func TestChat_LoadError(t *testing.T) {
	c := newSizedChat()
	c.SetLoadError("s1", "불러오지 못했습니다")

	out := ansi.Strip(c.View())
	if !strings.Contains(out, "불러오지 못했습니다") {
		t.Error("load error should be shown")
	}
	if strings.Contains(out, "환영합니다") {
		t.Error("welcome should not hide the load error")
	}
}


func TestChat_WaitingSurvivesClear(t *testing.T) {
	c := newSizedChat()
	c.SetWaiting(true)
	c.Clear()

	if !c.IsWaiting() {
		t.Fatal("Clear should keep the reply indicator")
	}
	if !strings.Contains(ansi.Strip(c.View()), "생각 중") {
		t.Error("waiting indicator should render")
	}

	c.SetWaiting(false)
	if _, cmd := c.Update(StopwatchTickMsg{}); cmd != nil {
		t.Error("stopwatch should stop once the reply arrived")
	}
}


func TestChat_Input(t *testing.T) {
	c := newSizedChat()
	c.SetFocused(true)
	c.SetInput("draft")
	if c.GetInput() != "draft" {
		t.Errorf("GetInput() = %q", c.GetInput())
	}
	c.ClearInput()
	if c.GetInput() != "" {
		t.Error("ClearInput should empty the input")
	}
}


func TestRenderMarkdown(t *testing.T) {
	md := "# 제목\n\n- 하나\n2. 둘\n> 인용\n`code` and [link](https://eora.ai)\n\n```go\nfunc main() {}\n```"
	out := ansi.Strip(renderMarkdown(md, 60))

	for _, want := range []string{"제목", "• 하나", "2. 둘", "인용", "code", "link", "func main() {}"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered markdown missing %q:\n%s", want, out)
		}
	}
	for _, gone := range []string{"# ", "```", "`code`"} {
		if strings.Contains(out, gone) {
			t.Errorf("rendered markdown still contains %q", gone)
		}
	}
}


func TestRenderMarkdown_UnclosedFence(t *testing.T) {
	out := ansi.Strip(renderMarkdown("```\nleft open", 40))
	if !strings.Contains(out, "left open") {
		t.Error("an unclosed fence should still render its body")
	}
}


func TestHighlightCode(t *testing.T) {
	code := "package main\n"
	out := highlightCode(code, "go")
	if out == code {
		t.Error("go code should be colored")
	}
	if got := ansi.Strip(out); got != strings.TrimRight(code, "\n") {
		t.Errorf("highlighting changed the text: %q", ansi.Strip(out))
	}
}


func TestWrapText(t *testing.T) {
	out := wrapText("가나다라마바사아자차카타파하", 10)
	for _, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w > 10 {
			t.Errorf("line %q is %d cells wide", line, w)
		}
	}
}

