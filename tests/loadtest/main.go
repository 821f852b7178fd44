package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	flag "github.com/spf13/pflag"
)

type place struct {
	city, country, iso, continent string
	lat, lon                      float64
}

var places = []place{
	{"Paris", "France", "FR", "Europe", 48.8566, 2.3522},
	{"Berlin", "Germany", "DE", "Europe", 52.52, 13.405},
	{"Tokyo", "Japan", "JP", "Asia", 35.6762, 139.6503},
	{"Ha Noi", "Vietnam", "VN", "Asia", 21.0278, 105.8342},
	{"New York", "USA", "US", "North America", 40.7128, -74.006},
	{"Lima", "Peru", "PE", "South America", -12.0464, -77.0428},
	{"Nairobi", "Kenya", "KE", "Africa", -1.2921, 36.8219},
	{"Sydney", "Australia", "AU", "Oceania", -33.8688, 151.2093},
}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

type loadTest struct {
	baseURL  string
	workers  int
	duration time.Duration
}

func main() {
	lt := loadTest{}
	flag.StringVar(&lt.baseURL, "url", "http://127.0.0.1:8090", "nomadix base URL")
	flag.IntVar(&lt.workers, "workers", 50, "concurrent clients")
	flag.DurationVar(&lt.duration, "duration", 10*time.Second, "length of each phase")
	flag.Parse()

	fmt.Println("=== Nomadix Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Places: %d\n\n", lt.workers, lt.duration, len(places))

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(lt.baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Writes (POST /locations, /visits, /fixes) ---")
	lt.runPhase(func(rng *rand.Rand) result {
		switch r := rng.Float64(); {
		case r < 0.4:
			return lt.addLocation(rng)
		case r < 0.7:
			return lt.mergeVisit(rng)
		default:
			return lt.pushFix(rng)
		}
	})

	fmt.Println("\n--- Phase 2: Read-heavy load (10% writes, 90% reads) ---")
	lt.runPhase(func(rng *rand.Rand) result {
		switch r := rng.Float64(); {
		case r < 0.10:
			return lt.pushFix(rng)
		case r < 0.40:
			return lt.get("/locations")
		case r < 0.60:
			return lt.get("/route")
		case r < 0.75:
			return lt.get("/route/geojson")
		case r < 0.90:
			return lt.get("/stats")
		default:
			return lt.get("/tracking")
		}
	})
}

func (lt loadTest) runPhase(workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < lt.workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(lt.duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, lt.duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func randomDate(rng *rand.Rand) time.Time {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return start.Add(time.Duration(rng.Int63n(int64(5 * 365 * 24 * time.Hour))))
}

func (lt loadTest) addLocation(rng *rand.Rand) result {
	p := places[rng.Intn(len(places))]
	body := map[string]interface{}{
		"city":      p.city,
		"country":   p.country,
		"continent": p.continent,
		"latitude":  p.lat,
		"longitude": p.lon,
		"date":      randomDate(rng).Format(time.DateOnly),
	}
	// 200 means the place was already recorded.
	return lt.post("/locations", body, http.StatusCreated, http.StatusOK)
}

func (lt loadTest) mergeVisit(rng *rand.Rand) result {
	p := places[rng.Intn(len(places))]
	levels := []string{"city", "country", "continent"}
	body := []map[string]interface{}{{
		"level":     levels[rng.Intn(len(levels))],
		"city":      p.city,
		"country":   p.country,
		"continent": p.continent,
		"latitude":  p.lat,
		"longitude": p.lon,
		"visitedAt": randomDate(rng).Format(time.RFC3339),
	}}
	return lt.post("/visits", body, http.StatusOK)
}

func (lt loadTest) pushFix(rng *rand.Rand) result {
	p := places[rng.Intn(len(places))]
	body := map[string]interface{}{
		"latitude":       p.lat + rng.Float64()*0.01,
		"longitude":      p.lon + rng.Float64()*0.01,
		"city":           p.city,
		"country":        p.country,
		"isoCountryCode": p.iso,
		"timestamp":      time.Now().UnixMilli(),
	}
	return lt.post("/fixes", body, http.StatusAccepted)
}

func (lt loadTest) post(path string, body interface{}, ok ...int) result {
	endpoint := "POST " + path
	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(lt.baseURL+path, "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	failed := true
	for _, status := range ok {
		if resp.StatusCode == status {
			failed = false
		}
	}
	return result{endpoint, resp.StatusCode, lat, failed}
}

func (lt loadTest) get(path string) result {
	endpoint := "GET " + path
	start := time.Now()
	resp, err := httpClient.Get(lt.baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
