package limiter

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 令牌桶规则
type BucketRule struct {
	Key          string        // 路由键
	FillInterval time.Duration // 放入令牌的间隔
	Capacity     int64         // 桶容量
	Quantum      int64         // 每次放入的令牌数
}

type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*ratelimit.Bucket
}

func newLimiter() Limiter {
	return Limiter{buckets: make(map[string]*ratelimit.Bucket)}
}

func (l *Limiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	bucket, ok := l.buckets[key]
	return bucket, ok
}

func (l *Limiter) addBuckets(rules ...BucketRule) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, rule := range rules {
		if _, ok := l.buckets[rule.Key]; ok {
			continue
		}
		// 无效规则不建桶，该路由不限流
		if rule.FillInterval <= 0 || rule.Capacity <= 0 {
			continue
		}
		quantum := rule.Quantum
		if quantum <= 0 {
			quantum = 1
		}
		l.buckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, quantum)
	}
}

// MethodLimiter keys buckets by "METHOD route-pattern", so /notes/edit/1 and /notes/edit/2 share one bucket
// MethodLimiter 按 "方法 路由模板" 作为键
type MethodLimiter struct {
	Limiter
}

func NewMethodLimiter() Face {
	return &MethodLimiter{Limiter: newLimiter()}
}

func (l *MethodLimiter) Key(c *gin.Context) string {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	return RouteKey(c.Request.Method, path)
}

func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	l.addBuckets(rules...)
	return l
}

// RouteKey 生成限流键
func RouteKey(method, path string) string {
	return method + " " + path
}
