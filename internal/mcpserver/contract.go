package mcpserver

// DocumentFormatContract describes the subset of org-mode syntax the
// parser understands, for LLM consumers reading documents through MCP.
const DocumentFormatContract = `# Org Document Format

Documents are plain-text org-mode files. The parser understands the
following constructs.

## Document keywords

` + "```" + `org
#+TITLE: Human-readable document title
#+FILETAGS: :work:project:
#+CATEGORY: inbox
#+TODO: TODO(t) IN-PROGRESS(i) | DONE(d)
` + "```" + `

- ` + "`" + `#+FILETAGS` + "`" + ` needs both the leading and trailing colon.
- ` + "`" + `#+TODO` + "`" + ` (or ` + "`" + `#+SEQ_TODO` + "`" + `) splits on ` + "`" + `|` + "`" + `:
  keywords before it are active states, after it closed states.
  Without a declaration the defaults are TODO | DONE.

## Headlines

` + "```" + `org
* TODO [#A] Ship the release :urgent:release:
  DEADLINE: <2026-09-01 Tue>
  :PROPERTIES:
  :CATEGORY: releases
  :END:
  Body text of the headline.
** Subtask
` + "```" + `

- Leading stars set the level; nesting follows the nearest shallower
  headline, levels need not be contiguous.
- The first word is a TODO keyword only when it matches a declared
  keyword; otherwise it is part of the title.
- ` + "`" + `[#A]` + "`" + ` is a priority cookie; trailing ` + "`" + `:tag:tag:` + "`" + ` groups are tags.
- DEADLINE / SCHEDULED / CLOSED planning entries sit on the line right
  below the headline, with org timestamps like
  ` + "`" + `<2026-09-01 Tue 14:30 +1w>` + "`" + `.

## Identity

- Document ids derive from the file path and stay stable across
  re-parses.
- Headline ids are ` + "`" + `<document_id>#<outline-path>` + "`" + `, e.g. ` + "`" + `abc#0.2.1` + "`" + `
  for the second child of the third top-level headline's first child.
`
