package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"egreen-site/internal/common/pagination"
	"egreen-site/internal/domain/entity"
	"egreen-site/internal/i18n"
	"egreen-site/internal/usecase/catalog"
)

const help = `commands:
  load            fetch the current page
  next, n         next page
  prev, p         previous page
  page N          go to page N
  category [ID]   filter by category id; no id clears the filter
  retry           fetch the current page again
  help            show this help
  quit, q         exit`

type repl struct {
	browser  *catalog.Browser
	resolver *i18n.Resolver
	locale   entity.Locale
	out      io.Writer
}

// run loads the first page and then executes one command per input line
// until quit, EOF or ctx is done.
func (r *repl) run(ctx context.Context, in io.Reader) error {
	r.exec(ctx, "load")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		if !r.exec(ctx, scanner.Text()) {
			return nil
		}
	}
}

// exec runs one command line and reports whether the loop should continue.
func (r *repl) exec(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	var (
		snap catalog.Snapshot
		err  error
	)
	switch strings.ToLower(cmd) {
	case "":
		return true
	case "quit", "q", "exit":
		return false
	case "help", "?":
		fmt.Fprintln(r.out, help)
		return true
	case "load":
		snap, err = r.browser.Load(ctx)
	case "retry":
		snap, err = r.browser.Retry(ctx)
	case "next", "n":
		snap, err = r.browser.Next(ctx)
	case "prev", "p", "previous":
		snap, err = r.browser.Previous(ctx)
	case "page":
		page, convErr := strconv.Atoi(arg)
		if convErr != nil {
			fmt.Fprintf(r.out, "page: %q is not a number\n", arg)
			return true
		}
		snap, err = r.browser.SelectPage(ctx, page)
	case "category", "c":
		snap, err = r.browser.SelectCategory(ctx, arg)
	default:
		fmt.Fprintf(r.out, "unknown command %q, type help\n", cmd)
		return true
	}

	if errors.Is(err, catalog.ErrPageOutOfRange) {
		fmt.Fprintln(r.out, err)
		return true
	}
	r.render(snap, err)
	return true
}

func (r *repl) render(snap catalog.Snapshot, err error) {
	st := snap.State
	if err != nil || st.Phase == catalog.PhaseError {
		if err == nil {
			err = st.Err
		}
		fmt.Fprintf(r.out, "error: %v (type retry)\n", err)
		return
	}

	filter := "all categories"
	if st.Category != "" {
		filter = "category " + st.Category
	}
	fmt.Fprintf(r.out, "%s, page %d of %d, %d products\n",
		filter, st.Pagination.CurrentPage, st.Pagination.TotalPages, st.Pagination.Total)

	if len(snap.Products) == 0 {
		fmt.Fprintln(r.out, "  no products")
	}
	for _, p := range snap.Products {
		fmt.Fprintf(r.out, "  %-6s %-30s %s\n", p.ID, r.display(p.Name), r.display(p.Category.Name))
	}
	fmt.Fprintln(r.out, formatNav(snap.Buttons, snap.Nav))
}

// formatNav renders the page selector, e.g. "< [1] 2 … 5 >". Disabled
// arrows are shown as spaces.
func formatNav(buttons []pagination.Button, nav pagination.Nav) string {
	var b strings.Builder
	if nav.PreviousEnabled {
		b.WriteString("<")
	} else {
		b.WriteString(" ")
	}
	for _, btn := range buttons {
		b.WriteString(" ")
		switch {
		case btn.Ellipsis:
			b.WriteString("…")
		case btn.Current:
			fmt.Fprintf(&b, "[%d]", btn.Page)
		default:
			b.WriteString(strconv.Itoa(btn.Page))
		}
	}
	if nav.NextEnabled {
		b.WriteString(" >")
	}
	return b.String()
}
