// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package apportionment implements the statutory seat-apportionment
// algorithm: quota computation, full-seat assignment, residual-seat
// assignment by largest remainder or highest averages depending on seat
// count, and the two reassignment rules for an absolute-majority list
// and list exhaustion. All arithmetic is exact, via fraction.Fraction.
package apportionment

import (
	"errors"
	"sort"

	"github.com/centralbureau/tabulator/internal/fraction"
)

// HighestAveragesThreshold is the seat count at or above which residual
// seats are assigned purely by highest averages; below it, largest
// remainder runs first.
const HighestAveragesThreshold = 19

// ErrNoSeats is returned when asked to apportion zero seats.
var ErrNoSeats = errors.New("election has no seats to apportion")

// ErrNoVotes is returned when total valid votes is zero.
var ErrNoVotes = errors.New("election has no valid votes to apportion")

// ListVotes is one political group's aggregated vote total, the input to
// Assign.
type ListVotes struct {
	Number int
	Votes  uint64
}

// Standing is the running apportionment state for one list, snapshotted
// after every step.
type Standing struct {
	ListNumber              int
	VotesCast               uint64
	RemainderVotes          fraction.Fraction
	MeetsRemainderThreshold bool
	NextVotesPerSeat        fraction.Fraction
	FullSeats               uint32
	ResidualSeats           uint32
}

// TotalSeats is the list's full plus residual seats so far.
func (s Standing) TotalSeats() uint32 {
	return s.FullSeats + s.ResidualSeats
}

func newStanding(list ListVotes, quota fraction.Fraction) Standing {
	votesCast := fraction.FromInt(list.Votes)
	var fullSeats uint32
	if list.Votes > 0 {
		fullSeats = uint32(votesCast.Div(quota).IntegerPart())
	}
	remainder := votesCast.Sub(quota.Mul(fraction.FromInt(uint64(fullSeats))))
	threshold := quota.Mul(fraction.New(3, 4))
	return Standing{
		ListNumber:              list.Number,
		VotesCast:               list.Votes,
		RemainderVotes:          remainder,
		MeetsRemainderThreshold: votesCast.GreaterOrEqual(threshold),
		NextVotesPerSeat:        votesCast.Div(fraction.FromInt(uint64(fullSeats) + 1)),
		FullSeats:               fullSeats,
	}
}

// addResidualSeat returns a copy of s with one more residual seat and a
// recomputed next-votes-per-seat.
func (s Standing) addResidualSeat() Standing {
	s.ResidualSeats++
	s.NextVotesPerSeat = fraction.FromInt(s.VotesCast).Div(fraction.FromInt(uint64(s.TotalSeats()) + 1))
	return s
}

// ChangeKind discriminates the SeatChange tagged union.
type ChangeKind string

const (
	ChangeHighestAverageAssignment       ChangeKind = "HighestAverageAssignment"
	ChangeUniqueHighestAverageAssignment ChangeKind = "UniqueHighestAverageAssignment"
	ChangeLargestRemainderAssignment     ChangeKind = "LargestRemainderAssignment"
	ChangeAbsoluteMajorityReassignment   ChangeKind = "AbsoluteMajorityReassignment"
	ChangeListExhaustionRemoval          ChangeKind = "ListExhaustionRemoval"
)

// HighestAverageAssignedSeat records an assignment made under the
// highest-averages rule.
type HighestAverageAssignedSeat struct {
	SelectedListNumber int
	ListOptions        []int
	ListAssigned       []int
	ListExhausted      []int
	VotesPerSeat       fraction.Fraction
}

// LargestRemainderAssignedSeat records an assignment made under the
// largest-remainder rule.
type LargestRemainderAssignedSeat struct {
	SelectedListNumber int
	ListOptions        []int
	ListAssigned       []int
	RemainderVotes     fraction.Fraction
}

// AbsoluteMajorityReassignedSeat records the enactment of the
// absolute-majority reassignment rule.
type AbsoluteMajorityReassignedSeat struct {
	ListRetractedSeat int
	ListAssignedSeat  int
}

// ListExhaustionRemovedSeat records one seat retracted under the
// list-exhaustion rule.
type ListExhaustionRemovedSeat struct {
	ListRetractedSeat int
	FullSeat          bool
}

// SeatChange is the tagged union of the five kinds of step the algorithm
// can record. Only the field matching Kind is populated.
type SeatChange struct {
	Kind             ChangeKind
	HighestAverage   *HighestAverageAssignedSeat
	LargestRemainder *LargestRemainderAssignedSeat
	AbsoluteMajority *AbsoluteMajorityReassignedSeat
	ListExhaustion   *ListExhaustionRemovedSeat
}

// Step records one change to the standings and the full snapshot of all
// standings after it was applied.
type Step struct {
	ResidualSeatNumber *uint32
	Change             SeatChange
	Standings          []Standing
}

// ListSeatAssignment is a list's final seat tally.
type ListSeatAssignment struct {
	ListNumber              int
	VotesCast               uint64
	RemainderVotes          fraction.Fraction
	MeetsRemainderThreshold bool
	FullSeats               uint32
	ResidualSeats           uint32
	TotalSeats              uint32
}

// Result is the full, explainable output of Assign.
type Result struct {
	Seats         uint32
	FullSeats     uint32
	ResidualSeats uint32
	Quota         fraction.Fraction
	Steps         []Step
	FinalStanding []ListSeatAssignment
}

type board struct {
	standings       []Standing
	order           []int // list index order, stable by ListNumber ascending
	steps           []Step
	residualSeatNum uint32
}

func (b *board) snapshot() []Standing {
	out := make([]Standing, len(b.standings))
	copy(out, b.standings)
	return out
}

func (b *board) indexOf(listNumber int) int {
	for i, s := range b.standings {
		if s.ListNumber == listNumber {
			return i
		}
	}
	return -1
}

// Assign runs the full statutory apportionment procedure for seats seats
// over lists. candidateCounts maps list number to the size of its
// candidate roster, used by the list-exhaustion rule.
func Assign(seats uint32, lists []ListVotes, candidateCounts map[int]int) (Result, error) {
	if seats == 0 {
		return Result{}, ErrNoSeats
	}
	var totalVotes uint64
	for _, l := range lists {
		totalVotes += l.Votes
	}
	if totalVotes == 0 {
		return Result{}, ErrNoVotes
	}

	quota := fraction.FromInt(totalVotes).Div(fraction.FromInt(uint64(seats)))

	sorted := make([]ListVotes, len(lists))
	copy(sorted, lists)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	b := &board{}
	var fullSeatsTotal uint32
	for _, l := range sorted {
		st := newStanding(l, quota)
		b.standings = append(b.standings, st)
		fullSeatsTotal += st.FullSeats
	}

	residual := seats - fullSeatsTotal

	if seats >= HighestAveragesThreshold {
		b.runHighestAverages(residual, nil)
	} else {
		remaining := b.runLargestRemainder(residual)
		if remaining > 0 {
			b.runHighestAverages(remaining, nil)
		}
	}

	applyAbsoluteMajorityReassignment(b, totalVotes, seats)
	applyListExhaustion(b, candidateCounts)

	final := make([]ListSeatAssignment, len(b.standings))
	var residualTotal uint32
	for i, s := range b.standings {
		final[i] = ListSeatAssignment{
			ListNumber:              s.ListNumber,
			VotesCast:               s.VotesCast,
			RemainderVotes:          s.RemainderVotes,
			MeetsRemainderThreshold: s.MeetsRemainderThreshold,
			FullSeats:               s.FullSeats,
			ResidualSeats:           s.ResidualSeats,
			TotalSeats:              s.TotalSeats(),
		}
		residualTotal += s.ResidualSeats
	}

	return Result{
		Seats:         seats,
		FullSeats:     fullSeatsTotal,
		ResidualSeats: residualTotal,
		Quota:         quota,
		Steps:         b.steps,
		FinalStanding: final,
	}, nil
}

// runLargestRemainder assigns up to one residual seat per list, to the
// lists meeting the remainder threshold, ordered by remainder votes
// descending (ties by list number ascending). Returns the number of
// residual seats still unassigned (seats remaining once every qualifying
// list has received at most one).
func (b *board) runLargestRemainder(residual uint32) uint32 {
	awarded := map[int]bool{}
	for residual > 0 {
		best := -1
		var bestRemainder fraction.Fraction
		var tieSet []int
		for i, s := range b.standings {
			if awarded[s.ListNumber] || !s.MeetsRemainderThreshold {
				continue
			}
			if best == -1 || s.RemainderVotes.GreaterThan(bestRemainder) {
				best = i
				bestRemainder = s.RemainderVotes
				tieSet = []int{s.ListNumber}
			} else if s.RemainderVotes.Equal(bestRemainder) {
				tieSet = append(tieSet, s.ListNumber)
			}
		}
		if best == -1 {
			break
		}
		sort.Ints(tieSet)
		selected := tieSet[0]
		idx := b.indexOf(selected)
		b.standings[idx] = b.standings[idx].addResidualSeat()
		awarded[selected] = true
		residual--
		b.residualSeatNum++

		seatNum := b.residualSeatNum
		var listOptions, listAssigned []int
		for _, n := range tieSet {
			if n == selected {
				listAssigned = append(listAssigned, n)
			} else {
				listOptions = append(listOptions, n)
			}
		}
		b.steps = append(b.steps, Step{
			ResidualSeatNumber: &seatNum,
			Change: SeatChange{
				Kind: ChangeLargestRemainderAssignment,
				LargestRemainder: &LargestRemainderAssignedSeat{
					SelectedListNumber: selected,
					ListOptions:        listOptions,
					ListAssigned:       listAssigned,
					RemainderVotes:     bestRemainder,
				},
			},
			Standings: b.snapshot(),
		})
	}
	return residual
}

// runHighestAverages assigns the remaining residual seats one at a time
// to the list with the strictly greatest next-votes-per-seat. excluded
// lists (used by list-exhaustion re-runs) are never considered.
func (b *board) runHighestAverages(residual uint32, excluded map[int]bool) {
	for i := uint32(0); i < residual; i++ {
		best := -1
		var bestAvg fraction.Fraction
		var tieSet []int
		for idx, s := range b.standings {
			if excluded != nil && excluded[s.ListNumber] {
				continue
			}
			if best == -1 || s.NextVotesPerSeat.GreaterThan(bestAvg) {
				best = idx
				bestAvg = s.NextVotesPerSeat
				tieSet = []int{s.ListNumber}
			} else if s.NextVotesPerSeat.Equal(bestAvg) {
				tieSet = append(tieSet, s.ListNumber)
			}
		}
		if best == -1 {
			return
		}

		unique := len(tieSet) == 1
		selected := tieSet[0]
		if !unique {
			// Prefer a tying list that has not yet received a residual
			// seat in this apportionment; if all tying lists already
			// have one, fall back to political-group number.
			candidates := make([]int, 0, len(tieSet))
			for _, n := range tieSet {
				idx := b.indexOf(n)
				if b.standings[idx].ResidualSeats == 0 {
					candidates = append(candidates, n)
				}
			}
			if len(candidates) == 0 {
				candidates = append([]int{}, tieSet...)
			}
			sort.Ints(candidates)
			selected = candidates[0]
		}

		idx := b.indexOf(selected)
		b.standings[idx] = b.standings[idx].addResidualSeat()
		b.residualSeatNum++
		seatNum := b.residualSeatNum

		var listOptions, listAssigned []int
		for _, n := range tieSet {
			if n == selected {
				listAssigned = append(listAssigned, n)
			} else {
				listOptions = append(listOptions, n)
			}
		}

		kind := ChangeHighestAverageAssignment
		if unique {
			kind = ChangeUniqueHighestAverageAssignment
		}
		b.steps = append(b.steps, Step{
			ResidualSeatNumber: &seatNum,
			Change: SeatChange{
				Kind: kind,
				HighestAverage: &HighestAverageAssignedSeat{
					SelectedListNumber: selected,
					ListOptions:        listOptions,
					ListAssigned:       listAssigned,
					VotesPerSeat:       bestAvg,
				},
			},
			Standings: b.snapshot(),
		})
	}
}

// applyAbsoluteMajorityReassignment enacts statutory rule P 9: if a
// single list received more than half the valid votes but not more than
// half the seats, retract the last-assigned residual seat from the list
// with the lowest next-votes-per-seat and award it to the majority list.
func applyAbsoluteMajorityReassignment(b *board, totalVotes uint64, seats uint32) {
	var majority *Standing
	for i, s := range b.standings {
		if fraction.FromInt(s.VotesCast).GreaterThan(fraction.FromInt(totalVotes).Div(fraction.New(2, 1))) {
			majority = &b.standings[i]
			break
		}
	}
	if majority == nil {
		return
	}
	if uint64(majority.TotalSeats())*2 > uint64(seats) {
		return
	}

	// Find the list with the lowest next-votes-per-seat among lists that
	// hold at least one residual seat, excluding the majority list
	// itself. Ties: retract from the list holding the greatest number of
	// residual seats; then by political-group number, largest first.
	worst := -1
	var worstAvg fraction.Fraction
	for i, s := range b.standings {
		if s.ListNumber == majority.ListNumber || s.ResidualSeats == 0 {
			continue
		}
		if worst == -1 || s.NextVotesPerSeat.LessThan(worstAvg) {
			worst = i
			worstAvg = s.NextVotesPerSeat
		} else if s.NextVotesPerSeat.Equal(worstAvg) {
			if s.ResidualSeats > b.standings[worst].ResidualSeats ||
				(s.ResidualSeats == b.standings[worst].ResidualSeats && s.ListNumber > b.standings[worst].ListNumber) {
				worst = i
			}
		}
	}
	if worst == -1 {
		return
	}

	b.standings[worst].ResidualSeats--
	b.standings[worst].NextVotesPerSeat = fraction.FromInt(b.standings[worst].VotesCast).Div(fraction.FromInt(uint64(b.standings[worst].TotalSeats()) + 1))

	majIdx := b.indexOf(majority.ListNumber)
	b.standings[majIdx] = b.standings[majIdx].addResidualSeat()

	b.steps = append(b.steps, Step{
		Change: SeatChange{
			Kind: ChangeAbsoluteMajorityReassignment,
			AbsoluteMajority: &AbsoluteMajorityReassignedSeat{
				ListRetractedSeat: b.standings[worst].ListNumber,
				ListAssignedSeat:  majority.ListNumber,
			},
		},
		Standings: b.snapshot(),
	})
}

// applyListExhaustion enacts statutory rule P 10: any list assigned more
// seats than it has candidates gives up seats, residual seats before
// full seats, until it holds no more than its candidate count; the
// retracted seats are re-awarded over the remaining (non-exhausted)
// lists by highest averages, whatever the seat count (largest remainder
// is not used for the re-award).
func applyListExhaustion(b *board, candidateCounts map[int]int) {
	exhausted := map[int]bool{}
	for {
		idx := -1
		for i, s := range b.standings {
			count, ok := candidateCounts[s.ListNumber]
			if !ok {
				continue
			}
			if int(s.TotalSeats()) > count {
				idx = i
				break
			}
		}
		if idx == -1 {
			return
		}

		listNumber := b.standings[idx].ListNumber
		count := candidateCounts[listNumber]
		var retracted uint32
		for int(b.standings[idx].TotalSeats()) > count {
			fromResidual := b.standings[idx].ResidualSeats > 0
			if fromResidual {
				b.standings[idx].ResidualSeats--
			} else {
				b.standings[idx].FullSeats--
			}
			b.standings[idx].NextVotesPerSeat = fraction.FromInt(b.standings[idx].VotesCast).Div(fraction.FromInt(uint64(b.standings[idx].TotalSeats()) + 1))
			retracted++

			b.steps = append(b.steps, Step{
				Change: SeatChange{
					Kind: ChangeListExhaustionRemoval,
					ListExhaustion: &ListExhaustionRemovedSeat{
						ListRetractedSeat: listNumber,
						FullSeat:          !fromResidual,
					},
				},
				Standings: b.snapshot(),
			})
		}
		exhausted[listNumber] = true
		b.runHighestAverages(retracted, exhausted)
	}
}
