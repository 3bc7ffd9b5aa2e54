package core

import "time"

const AVG_COUNT uint8 = 30

// Metrics keeps a rolling average of tick processing time and the number of
// ticks processed per second of accumulated tick time plus idle delay.
type Metrics struct {
	tickAVGCounter    uint8
	msTimes           [AVG_COUNT]float64
	msAvg             float64
	ticks             int32
	accumulatedTickMS float64
	tps               float64
	total             uint64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Update records one processed tick that took tickTime to run and was
// followed by a scheduling delay of interval.
func (m *Metrics) Update(tickTime, interval time.Duration) {
	tickMS := float64(tickTime) / float64(time.Millisecond)
	m.msTimes[m.tickAVGCounter] = tickMS
	if m.tickAVGCounter == AVG_COUNT-1 {
		sum := 0.0
		for i := uint8(0); i < AVG_COUNT; i++ {
			sum += m.msTimes[i]
		}
		m.msAvg = sum / float64(AVG_COUNT)
	}
	m.tickAVGCounter++
	m.tickAVGCounter %= AVG_COUNT

	// Ticks per second over the tick plus its delay.
	m.accumulatedTickMS += tickMS + float64(interval)/float64(time.Millisecond)
	m.ticks++
	if m.accumulatedTickMS >= 1000 {
		m.tps = float64(m.ticks)
		m.accumulatedTickMS -= 1000
		m.ticks = 0
	}
	m.total++
}

func (m *Metrics) TicksPerSecond() float64 {
	return m.tps
}

func (m *Metrics) TickTime() float64 {
	return m.msAvg
}

func (m *Metrics) Total() uint64 {
	return m.total
}

func (m *Metrics) Reset() {
	*m = Metrics{}
}
