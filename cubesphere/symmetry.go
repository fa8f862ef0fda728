package cubesphere

import "math"

// symmetrizeFace forces the projected face to be exactly symmetric
// about its two midlines, averaging away the asymmetric rounding left
// by the projection step. Longitudes are paired about the pi meridian
// (lon(i) - pi == pi - lon(ni-i)); latitudes are averaged directly in
// the i direction and with a sign flip in the j direction. Later steps
// (pole placement, edge stitching) rely on this exactness.
func symmetrizeFace(ni int, lon, lat []float64) {
	nip := ni + 1

	// Longitudes are constant along columns for this projection;
	// propagate the south edge before pairing.
	for j := 1; j < nip; j++ {
		for i := 1; i < ni; i++ {
			lon[j*nip+i] = lon[i]
		}
	}

	for j := 0; j < nip; j++ {
		for i := 0; i < ni/2; i++ {
			ip := ni - i
			avg := 0.5 * (lon[j*nip+i] - lon[j*nip+ip])
			lon[j*nip+i] = avg + math.Pi
			lon[j*nip+ip] = math.Pi - avg
			avg = 0.5 * (lat[j*nip+i] + lat[j*nip+ip])
			lat[j*nip+i] = avg
			lat[j*nip+ip] = avg
		}
	}

	for j := 0; j < ni/2; j++ {
		jp := ni - j
		for i := 1; i < ni; i++ {
			avg := 0.5 * (lon[j*nip+i] + lon[jp*nip+i])
			lon[j*nip+i] = avg
			lon[jp*nip+i] = avg
			avg = 0.5 * (lat[j*nip+i] - lat[jp*nip+i])
			lat[j*nip+i] = avg
			lat[jp*nip+i] = -avg
		}
	}
}
