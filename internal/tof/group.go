package tof

import "sort"

// AdjacencyGapPS is the maximum distance, in picoseconds, between a track's
// timestamp and its group's anchor timestamp. 100 ns comfortably covers the
// spread of flight times from one interaction.
const AdjacencyGapPS = 100e3

// SortTracks orders tracks ascending by TOF timestamp. The sort is stable
// so equal timestamps keep their original order and grouping stays
// deterministic.
func SortTracks(tracks []Track) {
	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].TOFSignal < tracks[j].TOFSignal
	})
}

// Groups partitions a time-sorted track list into interaction-candidate
// groups in a single pass. A group is extended while the next track's
// timestamp stays within AdjacencyGapPS of the group's FIRST track — the
// gap is measured from the group anchor, not from the previous track, so a
// slow drift of closely spaced tracks still closes the group once it spans
// more than the threshold. Every track lands in exactly one group; a track
// with no time neighbours forms a singleton group.
//
// The returned groups alias the input slice.
func Groups(tracks []Track) []Group {
	var groups []Group
	for i := 0; i < len(tracks); {
		anchor := tracks[i].TOFSignal
		j := i + 1
		for j < len(tracks) && tracks[j].TOFSignal-anchor <= AdjacencyGapPS {
			j++
		}
		groups = append(groups, Group{Tracks: tracks[i:j:j]})
		i = j
	}
	return groups
}
