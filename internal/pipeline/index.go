package pipeline

import (
	"sync"
)

// JobIndex 进程内的 userID → 进行中 jobID 映射。
// 生命周期跟随任务：触发时登记，终态时摘除；进程重启后不保留，
// 重启前在途任务的阶段事件将无法再路由到对应 Job 行（由 cleanup 兜底标记失败）。
type JobIndex struct {
	mu   sync.RWMutex
	jobs map[int64]string
}

func NewJobIndex() *JobIndex {
	return &JobIndex{
		jobs: make(map[int64]string),
	}
}

// Put 登记映射，覆盖同一用户已有的条目
func (i *JobIndex) Put(userID int64, jobID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.jobs[userID] = jobID
}

// Get 查询用户当前任务
func (i *JobIndex) Get(userID int64) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	jobID, ok := i.jobs[userID]
	return jobID, ok
}

// Delete 摘除用户条目
func (i *JobIndex) Delete(userID int64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.jobs, userID)
}

// Len 当前在途任务数
func (i *JobIndex) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.jobs)
}
