// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package directory

import "github.com/danielhkuo/polling-watch/models"

var defaultUnits = []models.PollingUnit{
	// Dutse LGA
	{Name: "PU 001, Kofar Fada", LGA: "Dutse", Ward: "Limawa"},
	{Name: "PU 002, Gidan Bera", LGA: "Dutse", Ward: "Limawa"},
	{Name: "PU 003, Sakwaya", LGA: "Dutse", Ward: "Sakwaya"},
	{Name: "PU 004, Madobi", LGA: "Dutse", Ward: "Madobi"},
	// Hadejia LGA
	{Name: "PU 005, Kofar Arewa", LGA: "Hadejia", Ward: "Kasuwa"},
	{Name: "PU 006, Gidan Sarki", LGA: "Hadejia", Ward: "Kasuwa"},
	{Name: "PU 007, Dubantu", LGA: "Hadejia", Ward: "Dubantu"},
	// Kiyawa LGA
	{Name: "PU 008, Andaza", LGA: "Kiyawa", Ward: "Andaza"},
	{Name: "PU 009, Balago", LGA: "Kiyawa", Ward: "Balago"},
	{Name: "PU 010, Fake", LGA: "Kiyawa", Ward: "Fake"},
	// Kachi LGA
	{Name: "PU 011, Kachi Central", LGA: "Kachi", Ward: "Kachi Cikin Gari"},
	{Name: "PU 012, Yalawa", LGA: "Kachi", Ward: "Yalawa"},
	{Name: "PU 013, Galamawa", LGA: "Dutse", Ward: "Galamawa"},
	{Name: "PU 014, Jigirya", LGA: "Dutse", Ward: "Jigirya"},
	{Name: "PU 015, Kofar Gabas", LGA: "Hadejia", Ward: "Kasuwa"},
}
