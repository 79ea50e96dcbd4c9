package domain

import (
	"sort"
	"strconv"
	"strings"
)

// AvailableTags returns every tag used in projects, in first-seen order
// and without duplicates.
func AvailableTags(projects []Project) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// VisibleProjects returns the projects matching state, in source order.
// The input slice is left untouched.
func VisibleProjects(projects []Project, state FilterState) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if state.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// GroupByYear buckets projects by year, most recent first. Projects with
// no year, or a year that is not a number, share the trailing OtherYear
// bucket. Order inside a bucket follows the input.
func GroupByYear(projects []Project) []YearGroup {
	type bucket struct {
		year  int
		group YearGroup
	}

	var (
		buckets []*bucket
		byLabel = make(map[string]*bucket)
		other   *bucket
	)
	for _, p := range projects {
		label := p.YearLabel()
		if label == OtherYear {
			if other == nil {
				other = &bucket{group: YearGroup{Year: OtherYear}}
			}
			other.group.Projects = append(other.group.Projects, p)
			continue
		}
		b, ok := byLabel[label]
		if !ok {
			y, _ := parseYear(label)
			b = &bucket{year: y, group: YearGroup{Year: label}}
			byLabel[label] = b
			buckets = append(buckets, b)
		}
		b.group.Projects = append(b.group.Projects, p)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].year > buckets[j].year
	})

	out := make([]YearGroup, 0, len(buckets)+1)
	for _, b := range buckets {
		out = append(out, b.group)
	}
	if other != nil {
		out = append(out, other.group)
	}
	return out
}

// BuildView runs the whole pipeline for one filter state.
func BuildView(projects []Project, state FilterState) View {
	visible := VisibleProjects(projects, state)
	return View{
		State:    state,
		Tags:     AvailableTags(projects),
		Projects: visible,
		Groups:   GroupByYear(visible),
		Total:    len(projects),
		Empty:    len(visible) == 0,
	}
}

func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
