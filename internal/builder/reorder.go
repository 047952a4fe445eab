package builder

// LessonEntry 向导内存中的课时条目，Position 为 1 起始的稠密序号
type LessonEntry struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	VideoURL string `json:"videoUrl,omitempty"`
	Position int    `json:"position"`
}

// MoveEntry 拖拽重排：先移除再插入，其余条目相对顺序不变。
// source == target 时不做任何事，包括不重编号。
func MoveEntry(entries []LessonEntry, source, target int) []LessonEntry {
	if source == target {
		return entries
	}

	moved := entries[source]
	rest := make([]LessonEntry, 0, len(entries))
	rest = append(rest, entries[:source]...)
	rest = append(rest, entries[source+1:]...)

	result := make([]LessonEntry, 0, len(entries))
	result = append(result, rest[:target]...)
	result = append(result, moved)
	result = append(result, rest[target:]...)

	Renumber(result)
	return result
}

// Renumber 按当前顺序赋予稠密的 1..N 序号
func Renumber(entries []LessonEntry) {
	for i := range entries {
		entries[i].Position = i + 1
	}
}

// NextPosition 追加课时的序号：max(现有)+1，列表为空时为 1
func NextPosition(entries []LessonEntry) int {
	max := 0
	for _, e := range entries {
		if e.Position > max {
			max = e.Position
		}
	}
	return max + 1
}
